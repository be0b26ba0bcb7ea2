// Package transfer importa y exporta el catálogo de productos (CSV) y genera el reporte PDF.
package transfer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

// ExportHeader columnas del CSV exportado, en orden.
var ExportHeader = []string{"id", "name", "unit", "category", "brand", "stock", "status", "image"}

const utf8BOM = "\ufeff"

// TransferUseCase importa filas una por una a través del servicio de inventario.
// Las importaciones de una misma instancia se serializan para que los duplicados
// dentro de un lote se detecten contra las filas ya insertadas.
type TransferUseCase struct {
	catalog   ProductCatalog
	generator StockReportGenerator
	log       *logger.Logger
	now       func() time.Time

	importMu sync.Mutex
}

// NewTransferUseCase construye el caso de uso. generator puede ser nil si no se expone el reporte.
func NewTransferUseCase(catalog ProductCatalog, generator StockReportGenerator, log *logger.Logger) *TransferUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &TransferUseCase{
		catalog:   catalog,
		generator: generator,
		log:       log,
		now:       time.Now,
	}
}

// Import lee todo el CSV antes de escribir: un error de sintaxis no importa ninguna fila.
//
// Por fila:
//   - falta name, unit, category o brand, o no hay columna stock → skipped;
//   - nombre ya existente (sin distinguir mayúsculas) → skipped + duplicates;
//   - stock negativo → skipped; stock no numérico → 0;
//   - fallo del store → skipped (se registra en el log y el lote continúa).
func (uc *TransferUseCase) Import(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	records, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	uc.importMu.Lock()
	defer uc.importMu.Unlock()

	res := &dto.ImportResponse{Duplicates: make([]dto.DuplicateRow, 0)}
	if len(records) == 0 {
		return res, nil
	}
	cols := headerIndex(records[0])
	_, hasStock := cols["stock"]

	for i, rec := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := i + 2
		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		p := entity.Product{
			Name:     field("name"),
			Unit:     field("unit"),
			Category: field("category"),
			Brand:    field("brand"),
			Image:    field("image"),
		}
		if !p.HasRequiredFields() || !hasStock {
			res.Skipped++
			continue
		}
		p.Stock = parseLeadingInt(field("stock"))
		if p.Stock < 0 {
			uc.log.Debug().Int("line", line).Str("name", p.Name).Int("stock", p.Stock).Msg("fila omitida: stock negativo")
			res.Skipped++
			continue
		}

		created, existingID, err := uc.catalog.ImportProduct(ctx, p)
		switch {
		case err != nil:
			if errors.Is(err, domain.ErrConflict) {
				// carrera con otro escritor: el índice único rechazó el nombre
				res.Skipped++
				continue
			}
			uc.log.Error().Err(err).Int("line", line).Str("name", p.Name).Msg("error importando fila")
			res.Skipped++
		case created == nil:
			res.Skipped++
			res.Duplicates = append(res.Duplicates, dto.DuplicateRow{Name: p.Name, ExistingID: existingID})
		default:
			res.Added++
		}
	}
	uc.log.Info().Int("added", res.Added).Int("skipped", res.Skipped).Int("duplicates", len(res.Duplicates)).Msg("importación CSV finalizada")
	return res, nil
}

// Export escribe el catálogo completo (id ascendente) como CSV con encabezado.
func (uc *TransferUseCase) Export(ctx context.Context, w io.Writer) error {
	products, err := uc.catalog.ListForExport(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("escribir encabezado CSV: %w", err)
	}
	for _, p := range products {
		err := cw.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Unit,
			p.Category,
			p.Brand,
			strconv.Itoa(p.Stock),
			p.Status,
			p.Image,
		})
		if err != nil {
			return fmt.Errorf("escribir fila CSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("generar CSV: %w", err)
	}
	return nil
}

// Report genera el PDF de existencias con el catálogo completo.
func (uc *TransferUseCase) Report(ctx context.Context) ([]byte, error) {
	if uc.generator == nil {
		return nil, errors.New("reporte PDF no configurado")
	}
	products, err := uc.catalog.ListForExport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStockReport(ctx, products, uc.now())
}

// readCSV descarta el BOM UTF-8 antes de parsear; csv.Reader lo trataría como parte del primer campo.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("no se pudo interpretar el archivo CSV: %w", err)
	}
	return records, nil
}

// headerIndex mapea nombre de columna (minúsculas, sin espacios) → posición.
// Si una columna se repite gana la primera.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

// parseLeadingInt interpreta el prefijo entero de s ("12abc" → 12, "3.9" → 3).
// Sin dígitos iniciales devuelve 0.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// desbordamiento: se trata como no numérico
		return 0
	}
	return n
}
