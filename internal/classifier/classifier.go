package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// LabelPrompt is the shared prompt used by all classifier backends.
const LabelPrompt = "What is the image if you can say it in a word or two?"

// ErrEmptyLabel is returned when a model answers with nothing usable.
var ErrEmptyLabel = errors.New("classifier returned an empty label")

// ErrInvalidImageURL is returned for image links that are not absolute
// http or https URLs.
var ErrInvalidImageURL = errors.New("image url must be an absolute http or https url")

// Classifier labels the image at a URL with a one- or two-word name.
type Classifier interface {
	Classify(ctx context.Context, imageURL string) (string, error)
}

// CleanLabel trims surrounding whitespace from a model answer. The label is
// otherwise used verbatim as the inventory key.
func CleanLabel(raw string) (string, error) {
	label := strings.TrimSpace(raw)
	if label == "" {
		return "", ErrEmptyLabel
	}
	return label, nil
}

// ValidateImageURL accepts only absolute http and https URLs with a host.
func ValidateImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImageURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidImageURL
	}
	return nil
}
