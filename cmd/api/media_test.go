package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	supported := []string{mediaTypeJSON, mediaTypeHateoas, mediaTypeAuthorFull}

	tests := []struct {
		name   string
		accept string
		want   string
		ok     bool
	}{
		{"missing header", "", mediaTypeJSON, true},
		{"exact", mediaTypeHateoas, mediaTypeHateoas, true},
		{"case insensitive", "Application/VND.Marvin.Hateoas+JSON", mediaTypeHateoas, true},
		{"highest q wins", mediaTypeJSON + ";q=0.2, " + mediaTypeAuthorFull + ";q=0.9", mediaTypeAuthorFull, true},
		{"order breaks ties", mediaTypeAuthorFull + ", " + mediaTypeJSON, mediaTypeAuthorFull, true},
		{"any", "*/*", mediaTypeJSON, true},
		{"subtype wildcard", "application/*", mediaTypeJSON, true},
		{"unsupported skipped", "text/html, " + mediaTypeHateoas, mediaTypeHateoas, true},
		{"q zero refuses", mediaTypeJSON + ";q=0", "", false},
		{"malformed entries ignored", ";;, " + mediaTypeAuthorFull, mediaTypeAuthorFull, true},
		{"nothing supported", "text/html, image/png", "", false},
		{"wrong wildcard family", "text/*", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := negotiate(tt.accept, supported)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorRepresentation(t *testing.T) {
	tests := []struct {
		mediaType string
		full      bool
		links     bool
	}{
		{mediaTypeJSON, false, false},
		{mediaTypeAuthorFriendly, false, false},
		{mediaTypeHateoas, false, true},
		{mediaTypeAuthorFriendlyHateoas, false, true},
		{mediaTypeAuthorFull, true, false},
		{mediaTypeAuthorFullHateoas, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			rep := authorRepresentation(tt.mediaType)
			assert.Equal(t, tt.full, rep.full)
			assert.Equal(t, tt.links, rep.links)
			assert.Equal(t, tt.mediaType, rep.mediaType)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, mediaTypeJSON, contentType("application/json; charset=utf-8"))
	assert.Equal(t, mediaTypeAuthorForCreation, contentType("Application/Vnd.Marvin.AuthorForCreation+Json"))
	assert.Equal(t, "", contentType(""))
}
