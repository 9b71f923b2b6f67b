package handler

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	appcatalog "github.com/autoparts/backend/internal/application/catalog"
	domaincatalog "github.com/autoparts/backend/internal/domain/catalog"
	"github.com/autoparts/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// maxImageSize caps a single product image upload
const maxImageSize = 5 << 20

// ProductHandler exposes the catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(products *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}
	req.Normalize()

	filter := domaincatalog.ListFilter{
		Part:     c.Query("part"),
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, req.Page, req.PageSize)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Create handles POST /products. The body is multipart form data with an
// optional image file.
func (h *ProductHandler) Create(c *gin.Context) {
	req, image, ok := h.bindProductForm(c, true)
	if !ok {
		return
	}

	product, err := h.products.Create(c.Request.Context(), appcatalog.CreateProductRequest{
		Name:  req.name,
		Part:  req.part,
		Price: req.price,
		Stock: req.stock,
	}, image)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}

	req, image, ok := h.bindProductForm(c, false)
	if !ok {
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, appcatalog.UpdateProductRequest{
		Name:  req.name,
		Part:  req.part,
		Price: req.price,
	}, image)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Restock handles POST /products/:id/restock
func (h *ProductHandler) Restock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product id")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.products.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

type productForm struct {
	name  string
	part  string
	price string
	stock int
}

// bindProductForm reads the multipart product fields and the optional
// image file
func (h *ProductHandler) bindProductForm(c *gin.Context, withStock bool) (productForm, *appcatalog.ImageUpload, bool) {
	form := productForm{
		name:  strings.TrimSpace(c.PostForm("name")),
		part:  strings.TrimSpace(c.PostForm("part")),
		price: strings.TrimSpace(c.PostForm("price")),
	}
	if withStock {
		stock, err := strconv.Atoi(c.DefaultPostForm("stock", "0"))
		if err != nil {
			h.BadRequest(c, "Stock must be an integer")
			return productForm{}, nil, false
		}
		form.stock = stock
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// no image attached
		return form, nil, true
	}
	if fileHeader.Size > maxImageSize {
		h.BadRequest(c, "Image exceeds the 5MB limit")
		return productForm{}, nil, false
	}

	image, err := readImage(fileHeader)
	if err != nil {
		h.BadRequest(c, "Could not read uploaded image")
		return productForm{}, nil, false
	}
	return form, image, true
}

func readImage(fileHeader *multipart.FileHeader) (*appcatalog.ImageUpload, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize))
	if err != nil {
		return nil, err
	}
	return &appcatalog.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
