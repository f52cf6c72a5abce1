package wxr

import (
	"strings"

	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/mmcdole/gofeed/rss"
)

func extensionValue(extensions ext.Extensions, prefix, name string) string {
	values := extensions[prefix][name]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

func childValue(extension ext.Extension, name string) string {
	values := extension.Children[name]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

// postMeta returns the first wp:postmeta value stored under key.
func postMeta(item *rss.Item, key string) string {
	for _, meta := range item.Extensions[prefixWordPress]["postmeta"] {
		if childValue(meta, "meta_key") == key {
			return strings.TrimSpace(childValue(meta, "meta_value"))
		}
	}
	return ""
}

// attachmentURLs indexes attachment items of the export by post id.
func attachmentURLs(items []*rss.Item) map[string]string {
	urls := make(map[string]string)
	for _, item := range items {
		if item == nil || extensionValue(item.Extensions, prefixWordPress, "post_type") != postTypeAttachment {
			continue
		}
		id := extensionValue(item.Extensions, prefixWordPress, "post_id")
		url := extensionValue(item.Extensions, prefixWordPress, "attachment_url")
		if id != "" && url != "" {
			urls[id] = url
		}
	}
	return urls
}

// featuredImage prefers an explicit wp:thumbnail_url and falls back to the
// attachment referenced by the _thumbnail_id post meta.
func featuredImage(item *rss.Item, attachments map[string]string) string {
	if url := extensionValue(item.Extensions, prefixWordPress, "thumbnail_url"); url != "" {
		return url
	}
	if id := postMeta(item, thumbnailMetaKey); id != "" {
		return attachments[id]
	}
	return ""
}
