package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"travelagg/pkg/db"
)

const (
	selectAgents = `SELECT id, name, type, description, rating, total_bookings, location,
		contact_phone, contact_email, image_base64, is_active, is_subscribed
		FROM agents`

	selectPackages = `SELECT id, agent_id, title, description, price, duration, duration_days,
		destination, image_base64, features, latitude, longitude, is_active,
		is_sponsored, original_price, sponsored_price, discount_percentage
		FROM packages`

	selectDestinations = `SELECT name, latitude, longitude FROM destinations`

	selectRoutes = `SELECT from_destination, to_destination, mode, distance_km, cost
		FROM transport_routes`

	selectRibbons = `SELECT id, title, type, items, sort_order, is_active FROM ribbons`
)

// Repository reads and writes the catalog tables.
type Repository struct {
	db db.SQLExecutor
}

func NewRepository(db db.SQLExecutor) *Repository {
	return &Repository{db: db}
}

// Snapshot loads every catalog table and validates the result.
func (r *Repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		doc Document
		err error
	)

	if doc.Agents, err = r.agents(ctx); err != nil {
		return nil, err
	}
	if doc.Packages, err = r.packages(ctx); err != nil {
		return nil, err
	}
	if doc.Destinations, err = r.destinations(ctx); err != nil {
		return nil, err
	}
	if doc.Routes, err = r.routes(ctx); err != nil {
		return nil, err
	}
	if doc.Ribbons, err = r.ribbons(ctx); err != nil {
		return nil, err
	}

	return NewSnapshot(doc)
}

func (r *Repository) agents(ctx context.Context) ([]Agent, error) {
	rows, err := r.db.QueryContext(ctx, selectAgents)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	var out []Agent
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Description, &a.Rating, &a.TotalBookings,
			&a.Location, &a.ContactPhone, &a.ContactEmail, &a.ImageBase64, &a.IsActive, &a.IsSubscribed); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repository) packages(ctx context.Context) ([]Package, error) {
	rows, err := r.db.QueryContext(ctx, selectPackages)
	if err != nil {
		return nil, fmt.Errorf("query packages: %w", err)
	}
	defer rows.Close()

	var out []Package
	for rows.Next() {
		var (
			p                   Package
			features            string
			lat, lng, discount  sql.NullFloat64
			original, sponsored sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.AgentID, &p.Title, &p.Description, &p.Cost, &p.Duration,
			&p.DurationDays, &p.Destination, &p.ImageBase64, &features, &lat, &lng, &p.IsActive,
			&p.IsSponsored, &original, &sponsored, &discount); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
			return nil, fmt.Errorf("package %s: decode features: %w", p.ID, err)
		}
		p.Latitude = nullFloat(lat)
		p.Longitude = nullFloat(lng)
		p.DiscountPercentage = nullFloat(discount)
		p.OriginalPrice = nullMoney(original)
		p.SponsoredPrice = nullMoney(sponsored)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) destinations(ctx context.Context) ([]Destination, error) {
	rows, err := r.db.QueryContext(ctx, selectDestinations)
	if err != nil {
		return nil, fmt.Errorf("query destinations: %w", err)
	}
	defer rows.Close()

	var out []Destination
	for rows.Next() {
		var (
			d        Destination
			lat, lng sql.NullFloat64
		)
		if err := rows.Scan(&d.Name, &lat, &lng); err != nil {
			return nil, fmt.Errorf("scan destination: %w", err)
		}
		// a row without coordinates only names the destination
		if !lat.Valid || !lng.Valid {
			continue
		}
		d.Latitude, d.Longitude = lat.Float64, lng.Float64
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) routes(ctx context.Context) ([]Route, error) {
	rows, err := r.db.QueryContext(ctx, selectRoutes)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var out []Route
	for rows.Next() {
		var (
			rt       Route
			distance sql.NullFloat64
		)
		if err := rows.Scan(&rt.From, &rt.To, &rt.Mode, &distance, &rt.Cost); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		rt.DistanceKm = nullFloat(distance)
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *Repository) ribbons(ctx context.Context) ([]Ribbon, error) {
	rows, err := r.db.QueryContext(ctx, selectRibbons)
	if err != nil {
		return nil, fmt.Errorf("query ribbons: %w", err)
	}
	defer rows.Close()

	var out []Ribbon
	for rows.Next() {
		var (
			rb    Ribbon
			kind  RibbonKind
			items string
		)
		if err := rows.Scan(&rb.ID, &rb.Title, &kind, &items, &rb.Order, &rb.IsActive); err != nil {
			return nil, fmt.Errorf("scan ribbon: %w", err)
		}
		rb.Content, err = DecodeRibbonContent(kind, []byte(items))
		if err != nil {
			return nil, fmt.Errorf("ribbon %s: %w", rb.ID, err)
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}

// Import replaces the whole catalog with doc in a single transaction.
func (r *Repository) Import(ctx context.Context, doc Document) error {
	// reject documents the read side would refuse
	if _, err := NewSnapshot(doc); err != nil {
		return err
	}

	return r.db.WithTransaction(ctx, sql.LevelDefault, func(ctx context.Context, tx *sql.Tx) error {
		exec := func(query string, args ...any) error {
			_, err := tx.ExecContext(ctx, r.db.Rebind(query), args...)
			return err
		}

		for _, table := range []string{"packages", "agents", "destinations", "transport_routes", "ribbons"} {
			if err := exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for _, a := range doc.Agents {
			if err := exec(`INSERT INTO agents (id, name, type, description, rating, total_bookings, location,
				contact_phone, contact_email, image_base64, is_active, is_subscribed)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				a.ID, a.Name, string(a.Type), a.Description, a.Rating, a.TotalBookings, a.Location,
				a.ContactPhone, a.ContactEmail, a.ImageBase64, a.IsActive, a.IsSubscribed); err != nil {
				return fmt.Errorf("insert agent %s: %w", a.ID, err)
			}
		}

		for _, p := range doc.Packages {
			features := p.Features
			if features == nil {
				features = []string{}
			}
			raw, err := json.Marshal(features)
			if err != nil {
				return fmt.Errorf("package %s: encode features: %w", p.ID, err)
			}
			if err := exec(`INSERT INTO packages (id, agent_id, title, description, price, duration, duration_days,
				destination, image_base64, features, latitude, longitude, is_active,
				is_sponsored, original_price, sponsored_price, discount_percentage)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				p.ID, p.AgentID, p.Title, p.Description, int64(p.Cost), p.Duration, p.DurationDays,
				p.Destination, p.ImageBase64, string(raw), floatArg(p.Latitude), floatArg(p.Longitude), p.IsActive,
				p.IsSponsored, moneyArg(p.OriginalPrice), moneyArg(p.SponsoredPrice), floatArg(p.DiscountPercentage)); err != nil {
				return fmt.Errorf("insert package %s: %w", p.ID, err)
			}
		}

		for _, d := range doc.Destinations {
			if err := exec(`INSERT INTO destinations (name, latitude, longitude) VALUES (?, ?, ?)`,
				d.Name, d.Latitude, d.Longitude); err != nil {
				return fmt.Errorf("insert destination %s: %w", d.Name, err)
			}
		}

		for _, rt := range doc.Routes {
			if err := exec(`INSERT INTO transport_routes (from_destination, to_destination, mode, distance_km, cost)
				VALUES (?, ?, ?, ?, ?)`,
				rt.From, rt.To, string(rt.Mode), floatArg(rt.DistanceKm), int64(rt.Cost)); err != nil {
				return fmt.Errorf("insert route %s-%s: %w", rt.From, rt.To, err)
			}
		}

		for _, rb := range doc.Ribbons {
			items, err := rb.ItemsJSON()
			if err != nil {
				return err
			}
			if err := exec(`INSERT INTO ribbons (id, title, type, items, sort_order, is_active)
				VALUES (?, ?, ?, ?, ?, ?)`,
				rb.ID, rb.Title, string(rb.Kind()), string(items), rb.Order, rb.IsActive); err != nil {
				return fmt.Errorf("insert ribbon %s: %w", rb.ID, err)
			}
		}

		return nil
	})
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullMoney(v sql.NullInt64) *Money {
	if !v.Valid {
		return nil
	}
	m := Money(v.Int64)
	return &m
}

func floatArg(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func moneyArg(m *Money) any {
	if m == nil {
		return nil
	}
	return int64(*m)
}
