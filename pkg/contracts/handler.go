package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Worker is a background component stopped during graceful shutdown.
type Worker interface {
	Stop()
}
