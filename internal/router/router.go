package router

import (
	"database/sql"
	"net/http"
	"os"

	mailmem "pet-adoption-backend/internal/adapters/mail/memory"
	mem "pet-adoption-backend/internal/adapters/storage/memory"
	pg "pet-adoption-backend/internal/adapters/storage/postgres"
	"pet-adoption-backend/internal/domain/adoptions"
	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/domain/purchases"
	"pet-adoption-backend/internal/domain/reminders"
	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/auth"
	"pet-adoption-backend/internal/ports/mail"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si no viene, los mails quedan en un recorder in-memory
	// que los refleja en el log (modo dev).
	Mailer mail.Sender

	// Zero-value => tabla default.
	Intervals reminders.IntervalTable

	ProductName string

	Logger logger.Logger
}

// New arma el router y el servicio de recordatorios. El servicio se devuelve
// aparte para que main lo cuelgue del scheduler diario.
func New(opts Options) (http.Handler, *reminders.Service) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		petRepo      pets.Repository
		adoptionRepo adoptions.Repository
		purchaseRepo purchases.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		adoptionRepo = pg.NewAdoptionsRepo(db)
		purchaseRepo = pg.NewPurchasesRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		adoptionRepo = mem.NewAdoptionRepo()
		purchaseRepo = mem.NewPurchaseRepo()
	}

	mailer := opts.Mailer
	if mailer == nil {
		mailer = mailmem.New(log)
	}

	intervals := opts.Intervals
	if intervals.Len() == 0 {
		intervals = reminders.DefaultIntervalTable()
	}

	product := opts.ProductName
	if product == "" {
		product = "PetAdopt"
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	adoptionsSvc := adoptions.NewService(adoptionRepo)
	purchasesSvc := purchases.NewService(purchaseRepo)

	dispatcher := reminders.NewDispatcher(adoptionsSvc, purchasesSvc, mailer, product, log)
	remindersSvc := reminders.NewService(petsSvc, dispatcher, intervals, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc, petsSvc)
	purchases.RegisterRoutes(r, purchasesSvc, petsSvc)
	reminders.RegisterRoutes(r, remindersSvc)

	return r, remindersSvc
}
