package repository

import (
	"context"
	"time"

	"obrador/internal/storage"
	"obrador/internal/store"
	"obrador/models"
)

const clientsKey = "clients"

func clientSchema() store.Schema[models.Client] {
	return store.Schema[models.Client]{
		Key:     clientsKey,
		Columns: []string{"id", "first_name", "last_name", "phone", "created_at", "active"},
		Encode: func(c models.Client) storage.Row {
			return storage.Row{
				"id":         storage.FormatInt(c.ID),
				"first_name": c.FirstName,
				"last_name":  c.LastName,
				"phone":      c.Phone,
				"created_at": storage.FormatTime(c.CreatedAt),
				"active":     storage.FormatBool(c.Active),
			}
		},
		Decode: func(row storage.Row) (models.Client, bool) {
			c := models.Client{
				ID:        row.Int("id"),
				FirstName: row.String("first_name"),
				LastName:  row.String("last_name"),
				Phone:     row.String("phone"),
				CreatedAt: row.Time("created_at"),
				Active:    row.Bool("active", true),
			}
			return c, models.Valid(c)
		},
	}
}

// ClientPatch updates a subset of client fields; nil pointers leave the
// current value untouched.
type ClientPatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Active    *bool
}

// Clients is the client repository. Clients own nothing, so deletes have no
// cascade; sales keep their denormalized client name.
type Clients struct {
	repo[models.Client]
}

func newClients(backend storage.Backend) *Clients {
	return &Clients{repo: repo[models.Client]{
		col:    store.NewCollection(backend, clientSchema()),
		id:     func(c models.Client) int { return c.ID },
		withID: func(c models.Client, id int) models.Client { c.ID = id; return c },
	}}
}

// ReadAll returns every client, newest first.
func (c *Clients) ReadAll(ctx context.Context) []models.Client {
	return c.readAll(ctx)
}

// Append stores a new client and returns its minted id.
func (c *Clients) Append(ctx context.Context, client models.Client) int {
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC()
	}
	return c.append(ctx, client, false)
}

// Update applies the patch to the client with the given id.
func (c *Clients) Update(ctx context.Context, id int, patch ClientPatch) bool {
	return c.update(ctx, id, func(client models.Client) models.Client {
		assign(&client.FirstName, patch.FirstName)
		assign(&client.LastName, patch.LastName)
		assign(&client.Phone, patch.Phone)
		assign(&client.Active, patch.Active)
		return client
	})
}

// Delete removes a client.
func (c *Clients) Delete(ctx context.Context, id int) bool {
	return c.delete(ctx, id)
}
