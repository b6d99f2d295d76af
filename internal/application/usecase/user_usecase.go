package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario: el propio actor o un miembro de su equipo.
func (uc *UserUseCase) GetByID(ctx context.Context, actor dto.Actor, id string) (*dto.UserResponse, error) {
	user, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// ListTeam usuarios del equipo del actor.
func (uc *UserUseCase) ListTeam(ctx context.Context, actor dto.Actor) ([]dto.UserResponse, error) {
	if err := requireTeam(actor); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByTeam(ctx, actor.TeamID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.NewUserResponse(u))
	}
	return out, nil
}

// Update edita nombres (el propio usuario o un admin del equipo). Rol y tiendas solo los cambia un admin.
func (uc *UserUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	isAdmin := actor.Role == entity.RoleAdmin
	if actor.UserID != id && !isAdmin {
		return nil, domain.NewError(domain.ErrForbidden, "No autorizado para editar este usuario",
			"user (%s) intentó editar a %s", actor.UserID, id)
	}
	if (in.Role != nil || in.StoreIDs != nil) && !isAdmin {
		return nil, domain.NewError(domain.ErrForbidden, "Solo un administrador puede cambiar rol o tiendas",
			"user (%s) con rol %s intentó cambiar rol/tiendas", actor.UserID, actor.Role)
	}
	if in.FirstName == nil && in.LastName == nil && in.Role == nil && in.StoreIDs == nil {
		return nil, domain.NewError(domain.ErrBadRequest, "Proporcione campos válidos", "user (%s): cuerpo vacío", id)
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.NewError(domain.ErrBadRequest, "Rol inválido", "user (%s): rol %q", id, *in.Role)
		}
		user.Role = *in.Role
	}
	if in.StoreIDs != nil {
		user.StoreIDs = uniqueStrings(in.StoreIDs)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Delete elimina un usuario: el propio actor o un admin de su equipo.
func (uc *UserUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.visible(ctx, actor, id); err != nil {
		return err
	}
	if actor.UserID != id && actor.Role != entity.RoleAdmin {
		return domain.NewError(domain.ErrForbidden, "No autorizado para eliminar este usuario",
			"user (%s) intentó eliminar a %s", actor.UserID, id)
	}
	_, err := uc.repo.Delete(ctx, id)
	return err
}

func (uc *UserUseCase) visible(ctx context.Context, actor dto.Actor, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewError(domain.ErrNotFound, "El usuario no existe", "user (%s) no encontrado", id)
	}
	if user.ID != actor.UserID && (actor.TeamID == "" || user.TeamID != actor.TeamID) {
		return nil, domain.NewError(domain.ErrForbidden, "El usuario no pertenece a su equipo",
			"user (%s) fuera del equipo %s", id, actor.TeamID)
	}
	return user, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
