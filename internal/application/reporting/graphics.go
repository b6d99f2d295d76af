package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/evolution"
)

// AssembleGraphics todas las gráficas del scope, cada una unida a sus historiales en el orden almacenado.
func (uc *UseCase) AssembleGraphics(ctx context.Context, scope Scope) ([]dto.GraphicResponse, error) {
	list, err := uc.graphics.ListByScope(ctx, scope.TeamID, scope.StoreID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0)
	for _, g := range list {
		ids = append(ids, g.HistoryIDs...)
	}
	byID, err := uc.historiesByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GraphicResponse, 0, len(list))
	for _, g := range list {
		out = append(out, graphicResponse(g, byID))
	}
	return out, nil
}

// AssembleOneGraphic gráfica con historiales, dueño y tienda. Los tres se cargan en paralelo.
func (uc *UseCase) AssembleOneGraphic(ctx context.Context, scope Scope, graphicID string) (*dto.GraphicDetailResponse, error) {
	g, err := uc.graphics.GetByID(ctx, graphicID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, graphicNotFound(graphicID)
	}
	if !inScope(g.TeamID, g.StoreID, scope) {
		return nil, outOfScope("graphic", graphicID, scope)
	}

	type historiesResult struct {
		byID map[string]*entity.History
		err  error
	}
	histCh := make(chan historiesResult, 1)
	go func() {
		byID, err := uc.historiesByID(ctx, g.HistoryIDs)
		histCh <- historiesResult{byID, err}
	}()
	owner, store, err := uc.ownerAndStore(ctx, g.GeneratedBy, g.StoreID)
	hist := <-histCh
	if err != nil {
		return nil, err
	}
	if hist.err != nil {
		return nil, hist.err
	}
	return &dto.GraphicDetailResponse{
		GraphicResponse: graphicResponse(g, hist.byID),
		OwnerDetails:    dto.NewOwnerDetails(owner),
		StoreDetails:    dto.NewStoreDetails(store),
	}, nil
}

// CreateGraphic crea una gráfica con los historiales de productIDs dentro del scope.
func (uc *UseCase) CreateGraphic(ctx context.Context, scope Scope, userID string, in dto.CreateGraphicRequest) (*dto.GraphicResponse, error) {
	name, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	productIDs := uniqueIDs(in.ProductIDs)
	if len(productIDs) == 0 {
		return nil, domain.NewError(domain.ErrBadRequest, "Indique al menos un producto", "graphic sin productos")
	}
	if err := uc.checkStore(ctx, scope); err != nil {
		return nil, err
	}
	histories, err := uc.histories.ListByProducts(ctx, scope.TeamID, scope.StoreID, productIDs)
	if err != nil {
		return nil, err
	}
	if len(histories) == 0 {
		return nil, domain.NewError(domain.ErrBadRequest, "Asegúrese de que todos los productos tengan historial",
			"ningún historial para productos %v en store (%s)", productIDs, scope.StoreID)
	}

	now := time.Now()
	g := &entity.Graphic{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		HistoryIDs:  make([]string, 0, len(histories)),
		GeneratedBy: userID,
		TeamID:      scope.TeamID,
		StoreID:     scope.StoreID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	byID := make(map[string]*entity.History, len(histories))
	for _, h := range histories {
		g.HistoryIDs = append(g.HistoryIDs, h.ID)
		byID[h.ID] = h
	}
	if err := uc.graphics.Create(ctx, g); err != nil {
		return nil, err
	}
	uc.log.Info().Str("graphic_id", g.ID).Int("histories", len(g.HistoryIDs)).Msg("gráfica creada")
	out := graphicResponse(g, byID)
	return &out, nil
}

// UpdateGraphic edita nombre y descripción.
func (uc *UseCase) UpdateGraphic(ctx context.Context, scope Scope, graphicID string, in dto.UpdateNamedRequest) (*dto.GraphicResponse, error) {
	g, err := uc.graphics.GetByID(ctx, graphicID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, graphicNotFound(graphicID)
	}
	if !inScope(g.TeamID, g.StoreID, scope) {
		return nil, outOfScope("graphic", graphicID, scope)
	}
	if err := applyNamed(&g.Name, &g.Description, in); err != nil {
		return nil, err
	}
	g.UpdatedAt = time.Now()
	if err := uc.graphics.Update(ctx, g); err != nil {
		return nil, err
	}
	byID, err := uc.historiesByID(ctx, g.HistoryIDs)
	if err != nil {
		return nil, err
	}
	out := graphicResponse(g, byID)
	return &out, nil
}

// DeleteGraphic elimina la gráfica; los historiales no se tocan.
func (uc *UseCase) DeleteGraphic(ctx context.Context, scope Scope, graphicID string) error {
	g, err := uc.graphics.GetByID(ctx, graphicID)
	if err != nil {
		return err
	}
	if g == nil {
		return graphicNotFound(graphicID)
	}
	if !inScope(g.TeamID, g.StoreID, scope) {
		return outOfScope("graphic", graphicID, scope)
	}
	n, err := uc.graphics.Delete(ctx, graphicID)
	if err != nil {
		return err
	}
	if n == 0 {
		return graphicNotFound(graphicID)
	}
	return nil
}

func (uc *UseCase) historiesByID(ctx context.Context, ids []string) (map[string]*entity.History, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return map[string]*entity.History{}, nil
	}
	list, err := uc.histories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.History, len(list))
	for _, h := range list {
		byID[h.ID] = h
	}
	return byID, nil
}

// graphicResponse une la gráfica con sus historiales; los IDs sin historial se omiten.
func graphicResponse(g *entity.Graphic, byID map[string]*entity.History) dto.GraphicResponse {
	histories := make([]dto.HistoryResponse, 0, len(g.HistoryIDs))
	for _, id := range g.HistoryIDs {
		h, ok := byID[id]
		if !ok {
			continue
		}
		cp := *h
		cp.Evolutions = evolution.SortByDateKey(h.Evolutions)
		histories = append(histories, *dto.NewHistoryResponse(&cp))
	}
	return dto.GraphicResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		GeneratedBy: g.GeneratedBy,
		TeamID:      g.TeamID,
		StoreID:     g.StoreID,
		Histories:   histories,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func graphicNotFound(id string) error {
	return domain.NewError(domain.ErrNotFound, "La gráfica no existe", "graphic (%s) no encontrada", id)
}
