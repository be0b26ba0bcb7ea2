package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/transfer"
)

// TransferHandler importación/exportación CSV y reporte PDF.
type TransferHandler struct {
	uc *transfer.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Import godoc
// @Summary      Importar productos desde CSV
// @Tags         transfer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV con encabezado name,unit,category,brand,stock[,status,image]"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "no se recibió ningún archivo")
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	out, err := h.uc.Import(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar productos a CSV
// @Tags         transfer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/products/export [get]
func (h *TransferHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.Export(c.UserContext(), &buf); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=products.csv")
	return c.Send(buf.Bytes())
}

// Report godoc
// @Summary      Reporte de existencias en PDF
// @Tags         transfer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/products/report.pdf [get]
func (h *TransferHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.Report(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=stock-report.pdf")
	return c.Send(pdf)
}
