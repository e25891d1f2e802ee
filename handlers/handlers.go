package handlers

// HandlerBundle groups the handlers the route registrar wires up.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Appointments *AppointmentHandler
	Blocks       *BlockHandler
	Auth         *AuthHandler
}
