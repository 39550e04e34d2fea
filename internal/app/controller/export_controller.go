package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tarumajaya/umkm-backend/internal/app/service"
	apperrors "github.com/tarumajaya/umkm-backend/internal/errors"
	"github.com/tarumajaya/umkm-backend/pkg/logger"
	"github.com/tarumajaya/umkm-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

type ExportController struct {
	umkmService service.UmkmService
}

func NewExportController(umkmService service.UmkmService) *ExportController {
	return &ExportController{umkmService: umkmService}
}

// ExportUmkm handles GET /api/v1/admin/umkm/export and streams the directory
// as an xlsx workbook.
func (ctrl *ExportController) ExportUmkm(c *gin.Context) {
	list := ctrl.umkmService.GetAllUmkm()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Daftar UMKM"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"No", "Nama", "Slug", "Kategori", "WhatsApp", "Alamat", "Unggulan", "Produk", "Terdaftar"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, umkm := range list {
		categoryName := ""
		if umkm.Category != nil {
			categoryName = umkm.Category.Name
		}

		featured := "Tidak"
		if umkm.Featured {
			featured = "Ya"
		}

		products := make([]string, 0, len(umkm.Products))
		for _, product := range umkm.Products {
			entry := product.Name
			if product.Price > 0 {
				entry += " (" + util.ToIDRCurrency(product.Price) + ")"
			}
			products = append(products, entry)
		}

		values := []interface{}{
			row + 1,
			umkm.Name,
			umkm.Slug,
			categoryName,
			umkm.Whatsapp,
			umkm.Address,
			featured,
			strings.Join(products, ", "),
			umkm.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("umkm-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write export workbook", err)
		apperrors.InternalError(c, "Gagal membuat berkas ekspor")
		return
	}

	logger.Info("UMKM export generated", map[string]interface{}{
		"rows": len(list),
	})
}
