package main

import (
	"fmt"
	"os"
	"time"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/security"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var identity security.Identity
	var expiresIn time.Duration

	flagSet := pflag.NewFlagSet("createtoken", pflag.ContinueOnError)
	flagSet.StringVar(&identity.ID, "id", "device-id", "subject id placed in the token")
	flagSet.StringVar(&identity.UniqueName, "name", "", "display name")
	flagSet.StringVar(&identity.Email, "email", "", "email address")
	flagSet.StringVar(&identity.Role, "role", security.RoleStaff, "role: staff or admin")
	flagSet.DurationVar(&expiresIn, "expires", time.Hour, "token lifetime")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	if identity.Role != security.RoleStaff && identity.Role != security.RoleAdmin {
		return fmt.Errorf("unknown role %q", identity.Role)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	token, err := security.CreateIdentityToken(identity, cfg.SigningSecret, expiresIn)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
