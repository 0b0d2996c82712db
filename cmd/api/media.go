// cmd/api/media.go
// This file contains the vendor media types the API understands and the
// Accept / Content-Type negotiation built on them.
package main

import (
	"mime"
	"sort"
	"strconv"
	"strings"
)

const (
	mediaTypeJSON = "application/json"

	mediaTypeHateoas                = "application/vnd.marvin.hateoas+json"
	mediaTypeAuthorFriendly         = "application/vnd.marvin.author.friendly+json"
	mediaTypeAuthorFriendlyHateoas  = "application/vnd.marvin.author.friendly.hateoas+json"
	mediaTypeAuthorFull             = "application/vnd.marvin.author.full+json"
	mediaTypeAuthorFullHateoas      = "application/vnd.marvin.author.full.hateoas+json"
	mediaTypeAuthorForCreation      = "application/vnd.marvin.authorforcreation+json"
	mediaTypeAuthorForCreationDeath = "application/vnd.marvin.authorforcreationwithdateofdeath+json"
)

// authorMediaTypes are the representations GET /api/authors/:authorId can
// produce, in order of preference for wildcard Accept ranges.
var authorMediaTypes = []string{
	mediaTypeJSON,
	mediaTypeAuthorFriendly,
	mediaTypeHateoas,
	mediaTypeAuthorFriendlyHateoas,
	mediaTypeAuthorFull,
	mediaTypeAuthorFullHateoas,
}

// representation describes what a negotiated author media type asks for.
type representation struct {
	mediaType string
	full      bool
	links     bool
}

// authorRepresentation interprets one of authorMediaTypes.
func authorRepresentation(mediaType string) representation {
	subtype := strings.TrimSuffix(strings.TrimPrefix(mediaType, "application/"), "+json")
	return representation{
		mediaType: mediaType,
		full:      strings.HasPrefix(subtype, "vnd.marvin.author.full"),
		links:     strings.HasSuffix(subtype, "hateoas"),
	}
}

type acceptRange struct {
	mediaType string
	q         float64
}

// negotiate picks the supported media type that best matches an Accept
// header. A missing header selects supported[0]. The second result is false
// when nothing acceptable is supported.
func negotiate(accept string, supported []string) (string, bool) {
	if strings.TrimSpace(accept) == "" {
		return supported[0], true
	}

	var ranges []acceptRange
	for _, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if v, ok := params["q"]; ok {
			q, err = strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: q})
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].q > ranges[j].q })

	for _, ar := range ranges {
		switch {
		case ar.mediaType == "*/*":
			return supported[0], true
		case strings.HasSuffix(ar.mediaType, "/*"):
			prefix := strings.TrimSuffix(ar.mediaType, "*")
			for _, s := range supported {
				if strings.HasPrefix(s, prefix) {
					return s, true
				}
			}
		default:
			for _, s := range supported {
				if s == ar.mediaType {
					return s, true
				}
			}
		}
	}
	return "", false
}

// contentType returns the lower-cased media type of a Content-Type header
// without parameters, or "" when it cannot be parsed.
func contentType(header string) string {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return mediaType
}
