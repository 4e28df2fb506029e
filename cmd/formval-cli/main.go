package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	formval "github.com/goliatone/go-formval"
	"github.com/goliatone/go-formval/pkg/formspec"
	"github.com/goliatone/go-formval/pkg/prompt"
)

func main() {
	source := flag.String("source", "", "form definition file (.yaml/.yml/.json) or OpenAPI document")
	name := flag.String("form", "", "form name (spec files) or operation ID (OpenAPI documents)")
	openapiDoc := flag.Bool("openapi", false, "treat the source as an OpenAPI document")
	fill := flag.Bool("fill", false, "fill the form interactively instead of rendering it")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *source == "" || *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	f, err := loadForm(ctx, *source, *name, *openapiDoc)
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	if *fill {
		result, err := formval.Fill(ctx, f)
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		if err != nil {
			log.Fatalf("Failed to fill form: %v", err)
		}
		if !result.Valid {
			log.Fatalf("Form still invalid: %v", result.Errors)
		}
		for field, value := range result.Values {
			fmt.Printf("%s=%v\n", field, value)
		}
		return
	}

	html, err := f.Render()
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(html)
	}
}

func loadForm(ctx context.Context, source, name string, openapiDoc bool) (*formval.Form, error) {
	if openapiDoc {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, err
		}
		return formval.FromOpenAPI(ctx, data, name)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, err
	}
	set, err := formspec.Parse(data)
	if err != nil {
		return nil, err
	}
	return set.Build(name, nil)
}
