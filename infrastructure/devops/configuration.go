package devops

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type DBConfig struct {
	Databases []DBEntry `yaml:"databases"`
}

// DSN renders the entry as a connection string for driver.
func (e DBEntry) DSN(driver string) (string, error) {
	switch driver {
	case "mysql":
		port := e.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC",
			e.Username, e.Password, e.Host, port, e.Name), nil
	case "postgres":
		port := e.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(e.Username, e.Password),
			Host:     fmt.Sprintf("%s:%d", e.Host, port),
			Path:     "/" + e.Name,
			RawQuery: "sslmode=require&TimeZone=UTC",
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("no dsn format for driver %q", driver)
	}
}

// ParseDBConfig accepts either a bare list or a {databases: [...]} document.
func ParseDBConfig(raw []byte) ([]DBEntry, error) {
	var parsed []DBEntry
	if err := yaml.Unmarshal(raw, &parsed); err == nil {
		return parsed, nil
	}

	var doc DBConfig
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return doc.Databases, nil
}

func FindDB(entries []DBEntry, name string) (*DBEntry, error) {
	for i := range entries {
		if entries[i].Name == name {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("database %s not found in parameter", name)
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

// LoadDBConfig reads the database list from an SSM parameter once per process.
func LoadDBConfig(ctx context.Context, paramName string) ([]DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		dbList, loadErr = ParseDBConfig([]byte(aws.ToString(out.Parameter.Value)))
	})

	return dbList, loadErr
}
