package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// AssembleReports todos los reportes del scope unidos a sus órdenes en el orden almacenado.
func (uc *UseCase) AssembleReports(ctx context.Context, scope Scope) ([]dto.ReportResponse, error) {
	list, err := uc.reports.ListByScope(ctx, scope.TeamID, scope.StoreID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for _, r := range list {
		ids = append(ids, r.OrderIDs...)
	}
	byID, err := uc.ordersByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, reportResponse(r, byID))
	}
	return out, nil
}

// AssembleOneReport reporte con órdenes, totales derivados, dueño y tienda.
//
// Totales:
//   - TotalItems:    suma de cantidades de todas las líneas.
//   - AllOrderItems: líneas de todas las órdenes, aplanadas en orden.
//   - TotalPrices:   suma de los totales de las órdenes.
func (uc *UseCase) AssembleOneReport(ctx context.Context, scope Scope, reportID string) (*dto.ReportDetailResponse, error) {
	r, err := uc.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, reportNotFound(reportID)
	}
	if !inScope(r.TeamID, r.StoreID, scope) {
		return nil, outOfScope("report", reportID, scope)
	}

	type ordersResult struct {
		byID map[string]*entity.Order
		err  error
	}
	ordersCh := make(chan ordersResult, 1)
	go func() {
		byID, err := uc.ordersByID(ctx, r.OrderIDs)
		ordersCh <- ordersResult{byID, err}
	}()
	owner, store, err := uc.ownerAndStore(ctx, r.GeneratedBy, r.StoreID)
	orders := <-ordersCh
	if err != nil {
		return nil, err
	}
	if orders.err != nil {
		return nil, orders.err
	}

	out := &dto.ReportDetailResponse{
		ReportResponse: reportResponse(r, orders.byID),
		TotalPrices:    decimal.Zero,
		AllOrderItems:  make([]dto.OrderItemDTO, 0),
		OwnerDetails:   dto.NewOwnerDetails(owner),
		StoreDetails:   dto.NewStoreDetails(store),
	}
	for _, o := range out.Orders {
		out.TotalPrices = out.TotalPrices.Add(o.TotalPrice)
		for _, it := range o.Items {
			out.TotalItems += it.Quantity
			out.AllOrderItems = append(out.AllOrderItems, it)
		}
	}
	return out, nil
}

// CreateReport crea un reporte; todas las órdenes deben existir y pertenecer al scope.
func (uc *UseCase) CreateReport(ctx context.Context, scope Scope, userID string, in dto.CreateReportRequest) (*dto.ReportResponse, error) {
	name, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	orderIDs := uniqueIDs(in.OrderIDs)
	if len(orderIDs) == 0 {
		return nil, domain.NewError(domain.ErrBadRequest, "Indique al menos una orden", "report sin órdenes")
	}
	if err := uc.checkStore(ctx, scope); err != nil {
		return nil, err
	}
	byID, err := uc.ordersByID(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range orderIDs {
		o, ok := byID[id]
		if !ok || !inScope(o.TeamID, o.StoreID, scope) {
			return nil, domain.NewError(domain.ErrBadRequest, "Asegúrese de que todas las órdenes pertenezcan a la tienda",
				"order (%s) inexistente o fuera de store (%s)", id, scope.StoreID)
		}
	}

	now := time.Now()
	r := &entity.Report{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		OrderIDs:    orderIDs,
		GeneratedBy: userID,
		TeamID:      scope.TeamID,
		StoreID:     scope.StoreID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.reports.Create(ctx, r); err != nil {
		return nil, err
	}
	uc.log.Info().Str("report_id", r.ID).Int("orders", len(r.OrderIDs)).Msg("reporte creado")
	out := reportResponse(r, byID)
	return &out, nil
}

// UpdateReport edita nombre y descripción.
func (uc *UseCase) UpdateReport(ctx context.Context, scope Scope, reportID string, in dto.UpdateNamedRequest) (*dto.ReportResponse, error) {
	r, err := uc.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, reportNotFound(reportID)
	}
	if !inScope(r.TeamID, r.StoreID, scope) {
		return nil, outOfScope("report", reportID, scope)
	}
	if err := applyNamed(&r.Name, &r.Description, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now()
	if err := uc.reports.Update(ctx, r); err != nil {
		return nil, err
	}
	byID, err := uc.ordersByID(ctx, r.OrderIDs)
	if err != nil {
		return nil, err
	}
	out := reportResponse(r, byID)
	return &out, nil
}

// DeleteReport elimina el reporte; las órdenes no se tocan.
func (uc *UseCase) DeleteReport(ctx context.Context, scope Scope, reportID string) error {
	r, err := uc.reports.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if r == nil {
		return reportNotFound(reportID)
	}
	if !inScope(r.TeamID, r.StoreID, scope) {
		return outOfScope("report", reportID, scope)
	}
	n, err := uc.reports.Delete(ctx, reportID)
	if err != nil {
		return err
	}
	if n == 0 {
		return reportNotFound(reportID)
	}
	return nil
}

// ExportReportPDF ensambla el reporte y lo renderiza a PDF. Devuelve los bytes y el nombre de archivo.
func (uc *UseCase) ExportReportPDF(ctx context.Context, scope Scope, reportID string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", domain.NewError(domain.ErrInternal, "", "reporting: generador PDF no configurado")
	}
	report, err := uc.AssembleOneReport(ctx, scope, reportID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdf.GenerateReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporting: generación PDF fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("reporte_%s.pdf", report.ID), nil
}

func (uc *UseCase) ordersByID(ctx context.Context, ids []string) (map[string]*entity.Order, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return map[string]*entity.Order{}, nil
	}
	list, err := uc.orders.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Order, len(list))
	for _, o := range list {
		byID[o.ID] = o
	}
	return byID, nil
}

// reportResponse une el reporte con sus órdenes; las órdenes eliminadas se omiten.
func reportResponse(r *entity.Report, byID map[string]*entity.Order) dto.ReportResponse {
	orders := make([]dto.OrderResponse, 0, len(r.OrderIDs))
	for _, id := range r.OrderIDs {
		if o, ok := byID[id]; ok {
			orders = append(orders, *dto.NewOrderResponse(o))
		}
	}
	return dto.ReportResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		GeneratedBy: r.GeneratedBy,
		TeamID:      r.TeamID,
		StoreID:     r.StoreID,
		Orders:      orders,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func reportNotFound(id string) error {
	return domain.NewError(domain.ErrNotFound, "El reporte no existe", "report (%s) no encontrado", id)
}
