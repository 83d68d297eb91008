package main

import (
	"fmt"
	"os"

	"github.com/yungbote/buildstore-backend/internal/app"
)

// The datastore has no serving surface of its own: booting it connects,
// migrates the schema, and verifies the wiring, which is what deploy scripts
// run before pointing the build orchestrator at the database.
func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Log.Info("build datastore ready", "migrated", true)
}
