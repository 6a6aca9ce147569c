package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aura-hub/aurahub"
	"github.com/aura-hub/aurahub/domain"
)

const (
	tryOnFailedMessage = "AI transformation failed. Please try a clearer photo."

	fallbackImagePattern = "https://picsum.photos/400/600?random=%d"
)

func (server *Server) handleListVendors(c echo.Context) error {
	return Success(c, http.StatusOK, server.store.Vendors(), "")
}

type vendorRequest struct {
	ID           int    `json:"id"`
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required"`
	WebsiteURL   string `json:"websiteUrl" validate:"omitempty,url"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	TradeLicense string `json:"tradeLicense"`
}

func (server *Server) handleAddVendor(c echo.Context) error {
	var request vendorRequest
	if err := c.Bind(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", "Invalid vendor payload")
	}
	if err := c.Validate(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", err.Error())
	}

	vendor := domain.Vendor{
		ID:           request.ID,
		Name:         request.Name,
		Slug:         request.Slug,
		WebsiteURL:   request.WebsiteURL,
		Status:       domain.VendorStatus(request.Status),
		Description:  request.Description,
		TradeLicense: request.TradeLicense,
	}
	if vendor.ID == 0 {
		vendor.ID = int(time.Now().UnixMilli())
	}
	if vendor.Status == "" {
		vendor.Status = domain.VendorPending
	}

	if err := server.store.AddVendor(vendor); err != nil {
		return InternalServerError(c, "SAVE_FAILED", err.Error())
	}
	return Success(c, http.StatusCreated, vendor, "Vendor added")
}

type storefrontResponse struct {
	Vendor   domain.Vendor    `json:"vendor"`
	Products []domain.Product `json:"products"`
}

func (server *Server) handleStorefront(c echo.Context) error {
	slug := c.Param("slug")
	vendor, ok := server.store.VendorBySlug(slug)
	if !ok {
		return NotFound(c, "VENDOR_NOT_FOUND", fmt.Sprintf("no storefront for slug %q", slug))
	}

	return Success(c, http.StatusOK, storefrontResponse{
		Vendor:   vendor,
		Products: server.store.ProductsByVendor(vendor.ID),
	}, "")
}

func (server *Server) handleListProducts(c echo.Context) error {
	return Success(c, http.StatusOK, server.store.Products(), "")
}

type productRequest struct {
	ID          int     `json:"id"`
	VendorID    int     `json:"vendorId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	ExternalURL string  `json:"externalUrl" validate:"omitempty,url"`
	Category    string  `json:"category"`
}

func (server *Server) handleAddProduct(c echo.Context) error {
	var request productRequest
	if err := c.Bind(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", "Invalid product payload")
	}
	if err := c.Validate(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", err.Error())
	}

	product := domain.Product{
		ID:          request.ID,
		VendorID:    request.VendorID,
		Name:        request.Name,
		Price:       request.Price,
		Description: request.Description,
		ImageURL:    request.ImageURL,
		ExternalURL: request.ExternalURL,
		Category:    request.Category,
	}
	if product.ID == 0 {
		product.ID = int(time.Now().UnixMilli())
	}
	if product.ImageURL == "" {
		product.ImageURL = fmt.Sprintf(fallbackImagePattern, time.Now().UnixMilli())
	}

	if err := server.store.AddProduct(product); err != nil {
		return InternalServerError(c, "SAVE_FAILED", err.Error())
	}
	return Success(c, http.StatusCreated, product, "Product added")
}

func (server *Server) handleDeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return BadRequest(c, "INVALID_INPUT", "product id must be numeric")
	}

	if err := server.store.DeleteProduct(id); err != nil {
		return InternalServerError(c, "SAVE_FAILED", err.Error())
	}
	return Success(c, http.StatusOK, nil, "Product deleted")
}

func (server *Server) handleListOrders(c echo.Context) error {
	return Success(c, http.StatusOK, server.store.Orders(), "")
}

func (server *Server) handleAddOrder(c echo.Context) error {
	var order domain.Order
	if err := c.Bind(&order); err != nil {
		return BadRequest(c, "INVALID_INPUT", "Invalid order payload")
	}
	if err := order.Validate(); err != nil {
		return BadRequest(c, "INVALID_ORDER", err.Error())
	}

	if err := server.store.AddOrder(order); err != nil {
		return InternalServerError(c, "SAVE_FAILED", err.Error())
	}
	return Success(c, http.StatusCreated, order, "Order placed")
}

func (server *Server) handleGetOrder(c echo.Context) error {
	id := c.Param("id")
	order, ok := server.store.OrderByID(id)
	if !ok {
		return NotFound(c, "ORDER_NOT_FOUND", fmt.Sprintf("no order %q", id))
	}
	return Success(c, http.StatusOK, order, "")
}

func (server *Server) handleStats(c echo.Context) error {
	return Success(c, http.StatusOK, server.store.EcosystemStats(), "")
}

func (server *Server) handleLiveSales(c echo.Context) error {
	return Success(c, http.StatusOK, map[string]int{"liveSales": server.store.LiveSales()}, "")
}

type assistantRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

func (server *Server) handleAssistant(c echo.Context) error {
	if server.assistant == nil {
		return BadGateway(c, "ASSISTANT_UNAVAILABLE", "assistant is not configured")
	}

	var request assistantRequest
	if err := c.Bind(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", "Invalid assistant payload")
	}
	if err := c.Validate(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", err.Error())
	}

	reply := server.assistant.GenerateAuraResponse(c.Request().Context(), request.Prompt)
	return Success(c, http.StatusOK, assistantResponse{Reply: reply}, "")
}

type tryOnRequest struct {
	UserImage string `json:"userImage" validate:"required"`
	ProductID int    `json:"productId" validate:"required"`
}

type tryOnResponse struct {
	Image string `json:"image"`
}

// handleTryOn runs the full virtual try-on flow: resolve the product, fetch
// and normalize its image, and ask the AI for the composite.
func (server *Server) handleTryOn(c echo.Context) error {
	if server.assistant == nil {
		return BadGateway(c, "ASSISTANT_UNAVAILABLE", "assistant is not configured")
	}

	var request tryOnRequest
	if err := c.Bind(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", "Invalid try-on payload")
	}
	if err := c.Validate(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", err.Error())
	}

	var product *domain.Product
	for _, candidate := range server.store.Products() {
		if candidate.ID == request.ProductID {
			p := candidate
			product = &p
			break
		}
	}
	if product == nil {
		return NotFound(c, "PRODUCT_NOT_FOUND", fmt.Sprintf("no product %d", request.ProductID))
	}

	ctx := c.Request().Context()
	raw, err := aurahub.FetchProductImage(ctx, server.httpClient, product.ImageURL)
	if err != nil {
		if errors.Is(err, aurahub.ErrImageFetch) || errors.Is(err, aurahub.ErrUnsupportedImageType) {
			return BadGateway(c, "IMAGE_RESTRICTED", aurahub.RestrictedImageMessage)
		}
		return BadGateway(c, "IMAGE_FETCH_FAILED", err.Error())
	}

	normalized, err := aurahub.NormalizeImage(raw)
	if err != nil {
		return BadGateway(c, "IMAGE_RESTRICTED", aurahub.RestrictedImageMessage)
	}

	composite, err := server.assistant.GenerateTryOnTransformation(ctx,
		request.UserImage, aurahub.EncodeImagePayload(normalized))
	if err != nil {
		server.log.WithError(err).Warn("try-on transformation failed")
		return BadGateway(c, "TRYON_FAILED", tryOnFailedMessage)
	}

	return Success(c, http.StatusOK, tryOnResponse{Image: composite}, "")
}

type applicationRequest struct {
	Name         string `json:"name" validate:"required"`
	WebsiteURL   string `json:"websiteUrl" validate:"omitempty,url"`
	Description  string `json:"description"`
	TradeLicense string `json:"tradeLicense" validate:"required"`
}

// handleApplication screens a vendor application through the governance rules
// and forwards the verdict to the submission backend.
func (server *Server) handleApplication(c echo.Context) error {
	if server.screener == nil || server.submitter == nil {
		return BadGateway(c, "APPLICATIONS_UNAVAILABLE", "application intake is not configured")
	}

	var request applicationRequest
	if err := c.Bind(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", "Invalid application payload")
	}
	if err := c.Validate(&request); err != nil {
		return BadRequest(c, "INVALID_INPUT", err.Error())
	}

	verdict, err := server.screener.Screen(domain.Vendor{
		Name:         request.Name,
		WebsiteURL:   request.WebsiteURL,
		Description:  request.Description,
		TradeLicense: request.TradeLicense,
	})
	if err != nil {
		return InternalServerError(c, "SCREENING_FAILED", err.Error())
	}
	if verdict.Status == domain.VendorBlocked {
		return Forbidden(c, "APPLICATION_BLOCKED", "Application rejected by Aura Governance", verdict.Reason)
	}

	submitted, err := server.submitter.SubmitVendorRequest(c.Request().Context(), map[string]any{
		"name":          request.Name,
		"website_url":   request.WebsiteURL,
		"description":   request.Description,
		"trade_license": request.TradeLicense,
		"status":        string(verdict.Status),
	})
	if err != nil {
		return BadGateway(c, "SUBMISSION_FAILED", err.Error())
	}
	return Success(c, http.StatusCreated, submitted, "Application submitted")
}
