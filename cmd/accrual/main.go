// Command accrual runs one accrual pass and one reminder pass, then exits.
// It is meant for an external cron when the API's scheduler is disabled.
//
//	accrual [-as-of 2026-05-01T00:05:00Z] [-skip-reminders]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"microcredit-backoffice/internal/app"
	"microcredit-backoffice/internal/config"
	"microcredit-backoffice/pkg/clock"
)

func main() {
	asOf := flag.String("as-of", "", "run as of this RFC3339 instant instead of now")
	skipReminders := flag.Bool("skip-reminders", false, "only run accrual")
	flag.Parse()

	var c clock.Clock = clock.System{}
	if *asOf != "" {
		t, err := time.Parse(time.RFC3339, *asOf)
		if err != nil {
			log.Fatalf("-as-of: %v", err)
		}
		c = clock.Fixed{At: t}
	}

	a, err := app.Build(config.Load(), c)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	rep, err := a.Accrual.Run(ctx)
	if err != nil {
		log.Printf("accrual: %v", err)
	}
	_ = enc.Encode(rep)

	if !*skipReminders {
		rem, rerr := a.Reminder.Run(ctx)
		if rerr != nil {
			log.Printf("reminders: %v", rerr)
			err = rerr
		}
		_ = enc.Encode(rem)
	}

	if err != nil || len(rep.Failures) > 0 {
		a.Close()
		os.Exit(1)
	}
}
