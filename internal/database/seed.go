package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/mktops/hid-generator/internal/utils"
)

// seedCategory is a starter page grouping with its hid prefix.
type seedCategory struct {
	Name   string
	Prefix string
}

// seedType is a starter component type with its hid code.
type seedType struct {
	Name string
	Code string
}

// starterCategories are inserted on first run.
var starterCategories = []seedCategory{
	{"Home", "hm"},
	{"PLP", "plp"},
	{"PDP", "pdp"},
	{"CLP", "clp"},
}

// starterTypes is the component catalog the marketing team works with.
// Each type gets its position list from positionCountFor at seed time.
var starterTypes = []seedType{
	{"BannerRotativo", "rtv"},
	{"BannerPrincipal", "bpr"},
	{"BannerSlim", "slm"},
	{"BannerDoble", "bdb"},
	{"BannerTriple", "btr"},
	{"Carrusel", "crs"},
	{"CarruselProducto", "cpr"},
	{"CarruselMarcas", "cmk"},
	{"GridCategorias", "grd"},
	{"GridProductos", "gpr"},
	{"Destacados", "dst"},
	{"Escaparate", "esc"},
	{"ModuloTexto", "txt"},
	{"ModuloVideo", "vid"},
	{"ModuloImagen", "img"},
	{"Countdown", "cnt"},
	{"Newsletter", "nws"},
	{"Testimonios", "tsm"},
	{"FAQ", "faq"},
	{"Lookbook", "lbk"},
	{"ShopTheLook", "stl"},
	{"Recomendados", "rcm"},
	{"NovedadesSlider", "nvs"},
	{"OfertasFlash", "ofl"},
	{"CategoriaVisual", "cvs"},
	{"MenuSecundario", "msc"},
	{"BarraPromo", "bpm"},
	{"PopupPromo", "ppp"},
	{"StickyBanner", "stk"},
	{"TablaComparativa", "tcp"},
	{"IconosServicio", "ics"},
	{"SelloConfianza", "scf"},
	{"BlogTeaser", "blg"},
	{"MapaTiendas", "mpt"},
}

// positionCounts records how many slot positions each component code gets
// when seeded.  Codes not listed here fall back to defaultPositionCount.
var positionCounts = map[string]int{
	"rtv": 6, "bpr": 4, "slm": 4, "bdb": 8, "btr": 9,
	"crs": 8, "cpr": 12, "cmk": 10, "grd": 12, "gpr": 16,
	"dst": 6, "esc": 8, "vid": 4, "img": 10, "cnt": 2,
	"nws": 1, "tsm": 5, "faq": 10, "lbk": 8, "stl": 6,
	"rcm": 12, "nvs": 8, "ofl": 6, "cvs": 9, "msc": 5,
	"bpm": 3, "ppp": 2, "stk": 2, "tcp": 4, "ics": 6,
	"scf": 4, "blg": 6,
}

const defaultPositionCount = 20

// positionCountFor returns the seeded position count for a component code.
func positionCountFor(code string) int {
	if n, ok := positionCounts[code]; ok {
		return n
	}
	return defaultPositionCount
}

// Seed populates an empty database with the default admin account and the
// starter catalog.  Each section only runs when its table is empty, so an
// already-initialized database is left untouched.
func Seed(ctx context.Context, db *sql.DB, adminPassword string) error {
	if err := seedAdmin(ctx, db, adminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedCategories(ctx, db); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := seedTypes(ctx, db); err != nil {
		return fmt.Errorf("seed types: %w", err)
	}
	return nil
}

func seedAdmin(ctx context.Context, db *sql.DB, password string) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	salt, err := utils.NewSalt()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (username, role, salt, pwd_hash) VALUES (?,?,?,?)",
		"admin", "admin", salt, utils.HashPassword(salt, password))
	if err != nil {
		return err
	}
	log.Println("seeded default admin account")
	return nil
}

func seedCategories(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, c := range starterCategories {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO categories (name, prefix) VALUES (?,?)", c.Name, c.Prefix); err != nil {
			return err
		}
	}
	log.Printf("seeded %d categories", len(starterCategories))
	return nil
}

func seedTypes(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM types").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, t := range starterTypes {
		res, err := db.ExecContext(ctx,
			"INSERT INTO types (name, code) VALUES (?,?)", t.Name, t.Code)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for i := 1; i <= positionCountFor(t.Code); i++ {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO type_orders (type_id, order_no) VALUES (?,?)", id, i); err != nil {
				return err
			}
		}
	}
	log.Printf("seeded %d component types", len(starterTypes))
	return nil
}
