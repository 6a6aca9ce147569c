package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/beevik/etree"
	"github.com/labstack/echo/v4"

	"github.com/aura-hub/aurahub/domain"
)

// handleStorefrontFeed renders a storefront's products as an RSS 2.0 feed so
// vendors can syndicate their catalog.
func (server *Server) handleStorefrontFeed(c echo.Context) error {
	slug := c.Param("slug")
	vendor, ok := server.store.VendorBySlug(slug)
	if !ok {
		return NotFound(c, "VENDOR_NOT_FOUND", fmt.Sprintf("no storefront for slug %q", slug))
	}

	feed, err := buildProductFeed(vendor, server.store.ProductsByVendor(vendor.ID))
	if err != nil {
		return InternalServerError(c, "FEED_FAILED", err.Error())
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", feed)
}

func buildProductFeed(vendor domain.Vendor, products []domain.Product) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(vendor.Name)
	channel.CreateElement("link").SetText(vendor.WebsiteURL)
	channel.CreateElement("description").SetText(vendor.Description)

	for _, product := range products {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(product.Name)
		item.CreateElement("guid").SetText(strconv.Itoa(product.ID))
		item.CreateElement("description").SetText(product.Description)
		item.CreateElement("category").SetText(product.Category)
		link := product.ExternalURL
		if link == "" {
			link = product.ImageURL
		}
		item.CreateElement("link").SetText(link)
		price := item.CreateElement("price")
		price.CreateAttr("currency", "BDT")
		price.SetText(strconv.FormatFloat(product.Price, 'f', -1, 64))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
