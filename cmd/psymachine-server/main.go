package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/vsariola/psymachine/config"
	"github.com/vsariola/psymachine/renoise"
	"github.com/vsariola/psymachine/server"
	"github.com/vsariola/psymachine/version"
)

func main() {
	configPath := flag.String("config", "", "Read the config from this file instead of the user config directory.")
	tmplDir := flag.String("t", "", "Render the documents with the templates in this directory instead of the standard template.")
	tmplName := flag.String("template", renoise.DefaultTemplate, "Name of the template to execute.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Psymachine server. Serves the pattern generator over HTTP.\nUsage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg = config.Default()
		err = config.ReadFile(*configPath, &cfg)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	var formatter *renoise.Formatter
	if *tmplDir != "" {
		formatter, err = renoise.NewFromTemplates(*tmplDir, *tmplName)
	} else {
		formatter, err = renoise.New()
	}
	if err != nil {
		log.Fatalf("could not create formatter: %v", err)
	}
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(cfg, formatter).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("psymachine %v listening on %v", version.VersionOrHash, cfg.Listen)
	log.Fatal(srv.ListenAndServe())
}
