package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"triage/internal/app/profile"

	"github.com/invopop/jsonschema"
)

func main() {
	var out string
	flag.StringVar(&out, "out", "profile.schema.json", "output path for the profile schema")
	flag.Parse()

	r := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := r.Reflect(&profile.File{})
	schema.Title = "Tuning profile"
	schema.Description = "Engine tuning profile. All fields are optional overlays on the built-in defaults."

	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("marshal schema: %v", err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(out, b, 0o644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}

	fmt.Printf("wrote profile schema to %s\n", out)
}
