package dto

// Response es el sobre común de todas las respuestas de la API:
// {"isSuccess": bool, "data": ...|null, "error": {...}|null}
// El código de estado HTTP refleja el resultado.
type Response struct {
	IsSuccess bool        `json:"isSuccess"`
	Data      interface{} `json:"data"`
	Error     *ErrorBody  `json:"error"`
}

// ErrorBody cuerpo de error dentro del sobre.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK construye una respuesta exitosa.
func OK(data interface{}) Response {
	return Response{IsSuccess: true, Data: data}
}

// Fail construye una respuesta de error.
func Fail(code, message string) Response {
	return Response{IsSuccess: false, Error: &ErrorBody{Code: code, Message: message}}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
