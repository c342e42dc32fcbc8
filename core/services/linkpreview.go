// ABOUTME: Link preview service extracting page metadata for analyzed URLs
// ABOUTME: Reads Open Graph tags with goquery and falls back to go-readability

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/publicsuffix"

	"mediacheck/core/domain"
	"mediacheck/core/errors"
	"mediacheck/core/interfaces"
	"mediacheck/pkg/utils/html"
	"mediacheck/pkg/utils/text"
)

const (
	linkPreviewCacheTTL = 24 * time.Hour
	maxPageBytes        = 5 * 1024 * 1024
	maxDescriptionRunes = 280
)

// LinkPreviewService handles metadata extraction from article URLs
type LinkPreviewService struct {
	deps interfaces.Dependencies
}

// NewLinkPreviewService creates a new link preview service
func NewLinkPreviewService(deps interfaces.Dependencies) *LinkPreviewService {
	return &LinkPreviewService{deps: deps}
}

// Preview fetches targetURL and extracts its title, description, site name and image
func (s *LinkPreviewService) Preview(ctx context.Context, targetURL string) (*domain.LinkPreview, error) {
	pageURL, err := validateURL(targetURL)
	if err != nil {
		return nil, err
	}

	cacheKey := "linkpreview:" + pageURL.String()
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil {
			var cached domain.LinkPreview
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.deps.HTTPClient.Get(ctx, pageURL.String())
	if err != nil {
		return nil, errors.WrapError(err, "failed to fetch page")
	}
	defer resp.Body().Close()

	if resp.StatusCode() >= 400 {
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "page fetch failed",
			API:        pageURL.Host,
		}
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body(), maxPageBytes))
	if err != nil {
		return nil, errors.WrapError(err, "failed to read page")
	}

	preview, err := extract(page, pageURL)
	if err != nil {
		return nil, err
	}

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("Extracted link preview", map[string]interface{}{
			"url":       preview.URL,
			"has_title": preview.Title != "",
			"has_image": preview.Image != "",
		})
	}

	if s.deps.Cache != nil && !preview.Empty() {
		if data, err := json.Marshal(preview); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, linkPreviewCacheTTL)
		}
	}

	return preview, nil
}

// extract reads Open Graph and standard meta tags, then fills gaps from readability.
func extract(page []byte, pageURL *url.URL) (*domain.LinkPreview, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, errors.WrapError(err, "failed to parse page")
	}

	preview := &domain.LinkPreview{URL: pageURL.String()}

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content := strings.TrimSpace(sel.AttrOr("content", ""))
		if content == "" {
			return
		}
		key := sel.AttrOr("property", sel.AttrOr("name", ""))

		switch strings.ToLower(key) {
		case "og:title", "twitter:title":
			setIfEmpty(&preview.Title, content)
		case "og:description", "twitter:description", "description":
			setIfEmpty(&preview.Description, content)
		case "og:site_name":
			setIfEmpty(&preview.SiteName, content)
		case "og:image", "og:image:url", "twitter:image":
			setIfEmpty(&preview.Image, content)
		}
	})

	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if preview.Title == "" || preview.Description == "" || preview.Image == "" {
		if article, err := readability.FromReader(bytes.NewReader(page), pageURL); err == nil {
			setIfEmpty(&preview.Title, strings.TrimSpace(article.Title))
			setIfEmpty(&preview.Description, strings.TrimSpace(article.Excerpt))
			setIfEmpty(&preview.SiteName, strings.TrimSpace(article.SiteName))
			setIfEmpty(&preview.Image, strings.TrimSpace(article.Image))
		}
	}

	if preview.SiteName == "" {
		preview.SiteName = siteName(pageURL)
	}
	preview.Title = html.StripHTML(preview.Title)
	preview.Description = text.Truncate(html.StripHTML(preview.Description), maxDescriptionRunes)
	preview.Image = absoluteURL(pageURL, preview.Image)

	return preview, nil
}

// validateURL accepts absolute http and https URLs only
func validateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &errors.ValidationError{Field: "url", Message: fmt.Sprintf("invalid URL: %q", raw)}
	}
	return parsed, nil
}

// siteName is the registrable domain of the page host, or the bare host for IPs and
// names without a public suffix.
func siteName(u *url.URL) string {
	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return host
	}
	if registrable, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return registrable
	}
	return host
}

func absoluteURL(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
