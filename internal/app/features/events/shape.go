// internal/app/features/events/shape.go
package events

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/productdesignexperts/api.connexus.team/internal/app/system/fieldpick"
	"github.com/productdesignexperts/api.connexus.team/internal/app/system/images"
)

// DefaultImage is the placeholder shown when an event has no image of its
// own.
const DefaultImage = "/images/Leadership.jpg"

var clock24 = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// DisplayTime converts a stored "HH:MM" 24-hour time to a "6:00 PM" display
// string. Anything that is not a plain 24-hour clock value (legacy display
// ranges, empty strings) passes through unchanged.
func DisplayTime(t string) string {
	m := clock24.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	hour, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if hour > 23 || min > 59 {
		return t
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, min, ampm)
}

// CTALabel derives the register call-to-action from the event price.
// Free or unknown-price events get an RSVP prompt.
func CTALabel(price string) string {
	if price == "" || price == "Free" || price == "UNKNOWN" {
		return "RSVP"
	}
	return fmt.Sprintf("Register (%s)", price)
}

// Shape decorates a normalized event document with display fields: the
// 12-hour time string, the CTA label, and a thumbnail block present only
// when the event has an image.
func Shape(doc map[string]any, imgs images.Resolver) map[string]any {
	if doc == nil {
		return nil
	}

	if t := fieldpick.First(doc, "time"); t != "" {
		doc["time_display"] = DisplayTime(t)
	}

	price := fieldpick.First(doc, "price")
	doc["cta"] = map[string]any{
		"label": CTALabel(price),
	}

	if img := fieldpick.First(doc, "image"); img != "" {
		src := imgs.Resolve(img)
		doc["image"] = src
		doc["thumbnail"] = map[string]any{
			"src": src,
			"alt": fieldpick.First(doc, "title") + " image",
		}
	}

	return doc
}
