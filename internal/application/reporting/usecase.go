// Package reporting ensambla reportes (órdenes) y gráficas (historiales) con sus datos unidos.
package reporting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
	"github.com/jhoicas/Inventario-teams-api/pkg/logger"
)

// ReportPDFGenerator genera el PDF de un reporte ya ensamblado.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.ReportDetailResponse) ([]byte, error)
}

// Scope equipo y tienda a los que pertenecen los reportes/gráficas consultados.
type Scope struct {
	TeamID  string
	StoreID string
}

// UseCase casos de uso de reportes y gráficas.
type UseCase struct {
	reports   repository.ReportRepository
	graphics  repository.GraphicRepository
	orders    repository.OrderRepository
	histories repository.HistoryRepository
	users     repository.UserRepository
	stores    repository.StoreRepository
	pdf       ReportPDFGenerator
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. pdf puede ser nil si la exportación no está habilitada.
func NewUseCase(
	reports repository.ReportRepository,
	graphics repository.GraphicRepository,
	orders repository.OrderRepository,
	histories repository.HistoryRepository,
	users repository.UserRepository,
	stores repository.StoreRepository,
	pdf ReportPDFGenerator,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		reports:   reports,
		graphics:  graphics,
		orders:    orders,
		histories: histories,
		users:     users,
		stores:    stores,
		pdf:       pdf,
		log:       log,
	}
}

// ownerAndStore carga en paralelo el usuario generador y la tienda.
func (uc *UseCase) ownerAndStore(ctx context.Context, userID, storeID string) (*entity.User, *entity.Store, error) {
	type userResult struct {
		user *entity.User
		err  error
	}
	type storeResult struct {
		store *entity.Store
		err   error
	}
	userCh := make(chan userResult, 1)
	storeCh := make(chan storeResult, 1)

	go func() {
		u, err := uc.users.GetByID(ctx, userID)
		userCh <- userResult{u, err}
	}()
	go func() {
		s, err := uc.stores.GetByID(ctx, storeID)
		storeCh <- storeResult{s, err}
	}()

	u := <-userCh
	s := <-storeCh
	if u.err != nil {
		return nil, nil, fmt.Errorf("reporting: obtener usuario: %w", u.err)
	}
	if s.err != nil {
		return nil, nil, fmt.Errorf("reporting: obtener tienda: %w", s.err)
	}
	return u.user, s.store, nil
}

// checkStore verifica que la tienda del scope exista dentro del equipo.
func (uc *UseCase) checkStore(ctx context.Context, scope Scope) error {
	store, err := uc.stores.GetByID(ctx, scope.StoreID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.NewError(domain.ErrNotFound, "La tienda no existe", "store (%s) no encontrada", scope.StoreID)
	}
	if store.TeamID != scope.TeamID {
		return domain.NewError(domain.ErrForbidden, "La tienda no pertenece a su equipo",
			"store (%s) fuera del equipo %s", scope.StoreID, scope.TeamID)
	}
	return nil
}

func outOfScope(kind, id string, scope Scope) error {
	return domain.NewError(domain.ErrForbidden, "No autorizado para acceder a este recurso",
		"%s (%s) fuera de team (%s) / store (%s)", kind, id, scope.TeamID, scope.StoreID)
}

func inScope(teamID, storeID string, scope Scope) bool {
	return teamID == scope.TeamID && storeID == scope.StoreID
}

// applyNamed aplica nombre/descripción; devuelve BadRequest si no hay campos.
func applyNamed(name, description *string, in dto.UpdateNamedRequest) error {
	if in.Name == nil && in.Description == nil {
		return domain.NewError(domain.ErrBadRequest, "Proporcione campos válidos", "actualización sin campos")
	}
	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if len(n) < 3 {
			return domain.NewError(domain.ErrBadRequest, "El nombre debe tener al menos 3 caracteres", "nombre %q inválido", n)
		}
		*name = n
	}
	if in.Description != nil {
		*description = strings.TrimSpace(*in.Description)
	}
	return nil
}

func validName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if len(n) < 3 || len(n) > 100 {
		return "", domain.NewError(domain.ErrBadRequest, "El nombre debe tener entre 3 y 100 caracteres", "nombre %q inválido", n)
	}
	return n, nil
}

// uniqueIDs quita duplicados conservando el orden.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
