/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Seednode/guesswho/guesswho"
	"github.com/julienschmidt/httprouter"
)

type RosterCharacter struct {
	Name     string                    `json:"name"`
	Filename string                    `json:"filename"`
	Traits   map[string]guesswho.Value `json:"traits"`
}

type RosterQuestion struct {
	guesswho.Question
	Text string `json:"text"`
}

// RosterResponse is the full roster plus every question a player can ask
// about it.
type RosterResponse struct {
	Characters []RosterCharacter `json:"characters"`
	Questions  []RosterQuestion  `json:"questions"`
}

func newRosterResponse(roster *guesswho.Roster) RosterResponse {
	resp := RosterResponse{
		Characters: make([]RosterCharacter, 0, roster.Len()),
	}

	for _, c := range roster.Characters() {
		resp.Characters = append(resp.Characters, RosterCharacter{
			Name:     c.Name(),
			Filename: c.Asset(),
			Traits:   c.Traits(),
		})
	}

	for _, q := range roster.Questions() {
		resp.Questions = append(resp.Questions, RosterQuestion{
			Question: q,
			Text:     questionText(q),
		})
	}

	return resp
}

func serveRoster(cfg *Config, roster *guesswho.Roster, errs chan<- error) httprouter.Handle {
	data, err := json.Marshal(newRosterResponse(roster))
	if err != nil {
		panic(fmt.Sprintf("failed to encode roster: %v", err))
	}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Roster (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}
