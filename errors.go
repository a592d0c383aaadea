/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"
)

var (
	ErrGameOver         = errors.New("the game is over")
	ErrNotStarted       = errors.New("no game in progress")
	ErrAlreadyStarted   = errors.New("a game is already in progress")
	ErrNoPendingAsk     = errors.New("no question is waiting for an answer")
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrUnknownMode      = errors.New("unknown game mode")
	ErrUnknownName      = errors.New("no character by that name")
	ErrUnknownTrait     = errors.New("unknown trait")
	ErrMissingValue     = errors.New("question needs a value")
	ErrMalformedMessage = errors.New("malformed message")
	ErrNotOwner         = errors.New("only the player who opened this game can play; you are spectating")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon())
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", html.EscapeString(title)))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", html.EscapeString(body)))

	return htmlBody.String()
}
