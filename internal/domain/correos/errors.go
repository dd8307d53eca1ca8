package correos

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("correo not found")
	ErrReferenceNotFound  = errors.New("reference not found")
	ErrTransicionInvalida = errors.New("transicion invalida")
	ErrDominioNoPermitido = errors.New("dominio del remitente no permitido por la entidad")
	ErrFlujoCerrado       = errors.New("flujo ya cerrado")
	ErrForbidden          = errors.New("forbidden")
	ErrRadicadoDuplicado  = errors.New("radicado ya registrado")
)
