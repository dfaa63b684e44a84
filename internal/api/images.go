package api

import (
	"net/url"
	"strconv"

	"cardapio/internal/domain"
)

// Uploaded images live under {base}/uploads/{product|user}/{id}/{file}. The
// helpers return "" when there is no file, leaving placeholders to the caller.

func (c *Client) ProductImageURL(p domain.Product) string {
	if p.Image == nil || p.ID == 0 {
		return ""
	}
	return c.uploadURL("product", int64(p.ID), *p.Image)
}

func (c *Client) RestaurantImageURL(r domain.Restaurant) string {
	if r.ID == 0 {
		return ""
	}
	return c.uploadURL("user", int64(r.ID), r.Image)
}

func (c *Client) RestaurantBannerURL(r domain.Restaurant) string {
	if r.ID == 0 {
		return ""
	}
	return c.uploadURL("user", int64(r.ID), r.Banner)
}

func (c *Client) uploadURL(kind string, id int64, file string) string {
	if file == "" {
		return ""
	}
	return c.base + "/uploads/" + kind + "/" + strconv.FormatInt(id, 10) + "/" + url.PathEscape(file)
}
