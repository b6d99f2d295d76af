package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-teams-api/internal/application/dto"
	"github.com/jhoicas/Inventario-teams-api/internal/domain"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-teams-api/internal/domain/repository"
)

// TeamTxRunner ejecuta en una transacción la creación/eliminación del equipo junto al enlace de usuarios.
type TeamTxRunner interface {
	RunTeam(ctx context.Context, fn func(teams repository.TeamRepository, users repository.UserRepository) error) error
}

// TeamUseCase aplica reglas de negocio para equipos.
type TeamUseCase struct {
	txRunner TeamTxRunner
	teams    repository.TeamRepository
	users    repository.UserRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(txRunner TeamTxRunner, teams repository.TeamRepository, users repository.UserRepository) *TeamUseCase {
	return &TeamUseCase{txRunner: txRunner, teams: teams, users: users}
}

// Create crea el equipo del usuario y lo enlaza como miembro. Un usuario tiene como máximo un equipo.
func (uc *TeamUseCase) Create(ctx context.Context, ownerID string, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 3 {
		return nil, domain.NewError(domain.ErrBadRequest, "El nombre debe tener al menos 3 caracteres", "team: nombre %q", name)
	}
	owner, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.NewError(domain.ErrNotFound, "El usuario no existe", "user (%s) no encontrado", ownerID)
	}
	if owner.TeamID != "" {
		return nil, teamConflict(ownerID)
	}

	now := time.Now()
	team := &entity.Team{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.RunTeam(ctx, func(teams repository.TeamRepository, users repository.UserRepository) error {
		existing, err := teams.GetByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return teamConflict(ownerID)
		}
		if err := teams.Create(ctx, team); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return teamConflict(ownerID)
			}
			return err
		}
		return users.SetTeam(ctx, ownerID, team.ID)
	})
	if err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

// Get obtiene el equipo del actor.
func (uc *TeamUseCase) Get(ctx context.Context, actor dto.Actor, teamID string) (*dto.TeamResponse, error) {
	team, err := uc.load(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

// Update edita nombre/descripción. Solo el dueño.
func (uc *TeamUseCase) Update(ctx context.Context, actor dto.Actor, teamID string, in dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := uc.loadOwned(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if in.Name == nil && in.Description == nil {
		return nil, domain.NewError(domain.ErrBadRequest, "Proporcione campos válidos", "team (%s): cuerpo vacío", teamID)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 3 {
			return nil, domain.NewError(domain.ErrBadRequest, "El nombre debe tener al menos 3 caracteres", "team: nombre %q", name)
		}
		team.Name = name
	}
	if in.Description != nil {
		team.Description = strings.TrimSpace(*in.Description)
	}
	team.UpdatedAt = time.Now()
	if err := uc.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

// Delete elimina el equipo y desvincula a sus miembros. Solo el dueño.
func (uc *TeamUseCase) Delete(ctx context.Context, actor dto.Actor, teamID string) error {
	if _, err := uc.loadOwned(ctx, actor, teamID); err != nil {
		return err
	}
	return uc.txRunner.RunTeam(ctx, func(teams repository.TeamRepository, users repository.UserRepository) error {
		members, err := users.ListByTeam(ctx, teamID)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := users.SetTeam(ctx, m.ID, ""); err != nil {
				return err
			}
		}
		n, err := teams.Delete(ctx, teamID)
		if err != nil {
			return err
		}
		if n == 0 {
			return teamNotFound(teamID)
		}
		return nil
	})
}

// ListMembers miembros del equipo del actor, excluyendo al propio actor.
func (uc *TeamUseCase) ListMembers(ctx context.Context, actor dto.Actor, teamID string) ([]dto.UserResponse, error) {
	if _, err := uc.load(ctx, actor, teamID); err != nil {
		return nil, err
	}
	members, err := uc.users.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(members))
	for _, m := range members {
		if m.ID == actor.UserID {
			continue
		}
		out = append(out, *dto.NewUserResponse(m))
	}
	return out, nil
}

// IsActiveTeam informa si el equipo existe. Lo usa el middleware RequireTeam.
func (uc *TeamUseCase) IsActiveTeam(ctx context.Context, teamID string) (bool, error) {
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	return team != nil, nil
}

func (uc *TeamUseCase) load(ctx context.Context, actor dto.Actor, teamID string) (*entity.Team, error) {
	if actor.TeamID != teamID {
		return nil, domain.NewError(domain.ErrForbidden, "No pertenece a este equipo",
			"user (%s) de team (%s) consultó team (%s)", actor.UserID, actor.TeamID, teamID)
	}
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, teamNotFound(teamID)
	}
	return team, nil
}

func (uc *TeamUseCase) loadOwned(ctx context.Context, actor dto.Actor, teamID string) (*entity.Team, error) {
	team, err := uc.load(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if team.OwnerID != actor.UserID {
		return nil, domain.NewError(domain.ErrForbidden, "Solo el dueño puede modificar el equipo",
			"user (%s) no es dueño de team (%s)", actor.UserID, teamID)
	}
	return team, nil
}

func toTeamResponse(t *entity.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func teamConflict(ownerID string) error {
	return domain.NewError(domain.ErrConflict, "El usuario ya pertenece a un equipo",
		"user (%s) ya tiene equipo", ownerID)
}

func teamNotFound(id string) error {
	return domain.NewError(domain.ErrNotFound, "El equipo no existe", "team (%s) no encontrado", id)
}
