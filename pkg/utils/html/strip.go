// ABOUTME: HTML utilities for reducing markup to display text
// ABOUTME: Used to clean page metadata that embeds tags or entities

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the visible text of an HTML fragment with whitespace collapsed.
// Script and style contents are dropped.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return CollapseSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseSpace(fragment)
	}
	doc.Find("script, style, noscript").Remove()

	return CollapseSpace(doc.Text())
}

// CollapseSpace trims s and replaces every run of whitespace with a single space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
