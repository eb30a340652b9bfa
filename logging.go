package main

import (
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// setupLogging selects the apex/log handler and level. LOG_FORMAT=json
// switches to structured output; LOG_LEVEL defaults to info.
func setupLogging(w io.Writer, lookup func(string) (string, bool)) {
	format, _ := lookup("LOG_FORMAT")
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		log.SetHandler(json.New(w))
	} else {
		log.SetHandler(text.New(w))
	}

	level := log.InfoLevel
	if s, ok := lookup("LOG_LEVEL"); ok && strings.TrimSpace(s) != "" {
		parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
		if err != nil {
			log.SetLevel(level)
			log.WithField("LOG_LEVEL", s).Warn("unknown log level, using info")
			return
		}
		level = parsed
	}
	log.SetLevel(level)
}

func defaultLogging() {
	setupLogging(os.Stderr, os.LookupEnv)
}
