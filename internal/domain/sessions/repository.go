package sessions

import "context"

// Los List* devuelven created_at desc, con AgentIDs cargados.
type Repository interface {
	Create(ctx context.Context, s Session) error
	// Update no toca session_agents.
	Update(ctx context.Context, s Session) error
	// UpdateWithAgents además reemplaza session_agents con s.AgentIDs, todo o nada.
	UpdateWithAgents(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Session, error)

	ListByPet(ctx context.Context, petID string) ([]Session, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Session, error)
	ListByAgent(ctx context.Context, agentID string) ([]Session, error)

	IsAgentForPet(ctx context.Context, petID, agentID string) (bool, error)
}
