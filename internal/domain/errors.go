package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Cálculo de precios: la creación de la venta debe rechazarse antes de persistir.
	ErrNoPriceSource    = errors.New("no hay fuente de precio aplicable para el lote")
	ErrNonPositivePrice = errors.New("el precio calculado no es positivo")

	// Configuración de la oferta de financiamiento: el plan se aborta completo,
	// nunca quedan cuotas parciales.
	ErrInvalidOffer        = errors.New("parámetros de la oferta inválidos")
	ErrNegativeRemaining   = errors.New("el saldo para cuotas es negativo")
	ErrDepositExceedsPrice = errors.New("el depósito supera el precio de venta")

	// Estado de la venta / lote.
	ErrPieceNotAvailable = errors.New("el lote no está disponible")
	ErrSaleNotPending    = errors.New("la venta no está pendiente")
	ErrSaleCancelled     = errors.New("la venta está cancelada")

	// Registro de abonos sobre cuotas.
	ErrInstallmentPaid = errors.New("la cuota ya está pagada")
	ErrOverpayment     = errors.New("el abono supera el saldo de la cuota")
	// ErrVersionConflict: el check optimista de versión falló; el caller debe
	// recargar la cuota y reintentar, nunca descartar el abono en silencio.
	ErrVersionConflict = errors.New("conflicto de versión al registrar el abono")
)
