package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spec-kit/early-access-service/internal/form"
)

// Submits one early-access record through the form controller. With no
// endpoint the record is retained in a local fallback file instead.
func main() {
	var (
		endpoint = flag.String("endpoint", "", "subscribe endpoint URL, e.g. http://localhost:8080/api/subscribe")
		fallback = flag.String("fallback", "early_access_fallback.jsonl", "local file used when no endpoint is set")
		name     = flag.String("name", "", "visitor name")
		email    = flag.String("email", "", "visitor email")
		phone    = flag.String("phone", "", "visitor phone")
	)
	flag.Parse()

	controller := form.NewController(*endpoint, form.WithFallback(form.NewFileFallback(*fallback)))
	controller.UpdateField(form.FieldName, *name)
	controller.UpdateField(form.FieldEmail, *email)
	controller.UpdateField(form.FieldPhone, *phone)

	controller.Submit(context.Background())

	switch controller.Status() {
	case form.StatusSuccess:
		fmt.Println("submission accepted")
	default:
		if msg := controller.Err(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		} else {
			fmt.Fprintln(os.Stderr, "submission not sent")
		}
		os.Exit(1)
	}
}
