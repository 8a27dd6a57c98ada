package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"estatcli/internal/inventory"
)

func main() {
	path := flag.String("inventory", "data_inventory.csv", "path to the inventory file (.csv or .xlsx)")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	if command == "template" {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: inventory template <output file>")
			os.Exit(2)
		}
		if err := inventory.WriteTemplate(args[0]); err != nil {
			slog.Error("Template export failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("template exported to %s\n", args[0])
		return
	}

	store := inventory.NewStore(*path)
	if err := store.Load(); err != nil {
		slog.Error("Failed to load inventory", "path", *path, "error", err)
		os.Exit(1)
	}

	var err error
	switch command {
	case "add":
		err = runAdd(store, args)
	case "list":
		err = runList(store, args)
	case "show":
		err = runShow(store, args)
	case "delete":
		err = runDelete(store, args)
	case "search":
		err = runSearch(store, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: inventory [-inventory file] <command> [args]

commands:
  add       add a data source (flags: -id -topic -name -url -file -format -years -geo -overwrite)
  list      list entries (flag: -topic)
  show      show one entry by source ID
  delete    delete one entry by source ID
  search    search all fields by keyword
  template  export an empty template with one example row`)
}

func runAdd(store *inventory.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	id := fs.String("id", "", "source ID (required)")
	topic := fs.String("topic", "", "topic")
	name := fs.String("name", "", "source name (required)")
	url := fs.String("url", "", "URL")
	file := fs.String("file", "", "file location")
	format := fs.String("format", "", "data format")
	years := fs.String("years", "", "data years, e.g. 2005-2023")
	geo := fs.String("geo", "", "geographic scope")
	overwrite := fs.Bool("overwrite", false, "replace an existing entry with the same ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	record := inventory.SourceRecord{
		SourceID:        *id,
		Topic:           *topic,
		SourceName:      *name,
		URL:             *url,
		FileLocation:    *file,
		DataFormat:      *format,
		DataYears:       *years,
		GeographicScope: *geo,
	}
	if err := store.Add(record, *overwrite); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Printf("added %s - %s\n", *id, *name)
	return nil
}

func runList(store *inventory.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	topic := fs.String("topic", "", "filter by topic")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records := store.List(*topic)
	if len(records) == 0 {
		fmt.Println("no entries found")
		return nil
	}
	fmt.Printf("total entries: %d\n\n", len(records))
	for _, r := range records {
		fmt.Printf("[%s] %s\n", r.SourceID, r.SourceName)
		fmt.Printf("  topic: %s | format: %s | years: %s\n", r.Topic, r.DataFormat, r.DataYears)
		if r.FileLocation != "" {
			fmt.Printf("  location: %s\n", r.FileLocation)
		}
		fmt.Println()
	}
	return nil
}

func runShow(store *inventory.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: inventory show <source-id>")
	}
	record, ok := store.Show(args[0])
	if !ok {
		return fmt.Errorf("entry not found: %s", args[0])
	}

	fields := []struct {
		label string
		value string
	}{
		{"Source ID", record.SourceID},
		{"Topic", record.Topic},
		{"Source Name", record.SourceName},
		{"URL", record.URL},
		{"Date Accessed", record.DateAccessed},
		{"Data Years", record.DataYears},
		{"Geographic Scope", record.GeographicScope},
		{"File Location", record.FileLocation},
		{"Data Format", record.DataFormat},
		{"Key Variables", record.KeyVariables},
		{"Data Quality", record.DataQuality},
		{"Limitations", record.Limitations},
		{"Update Frequency", record.UpdateFrequency},
		{"Contact Info", record.ContactInfo},
		{"Notes", record.Notes},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Printf("%-20s: %s\n", f.label, f.value)
		}
	}
	return nil
}

func runDelete(store *inventory.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: inventory delete <source-id>")
	}
	if !store.Delete(args[0]) {
		return fmt.Errorf("entry not found: %s", args[0])
	}
	if err := store.Save(); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func runSearch(store *inventory.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: inventory search <keyword>")
	}
	records := store.Search(args[0])
	if len(records) == 0 {
		fmt.Println("no matches found")
		return nil
	}
	fmt.Printf("found %d matches:\n\n", len(records))
	for _, r := range records {
		fmt.Printf("[%s] %s\n  topic: %s\n\n", r.SourceID, r.SourceName, r.Topic)
	}
	return nil
}
