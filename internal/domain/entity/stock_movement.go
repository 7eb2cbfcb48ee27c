package entity

import "time"

// MovementType tipo de movimiento de stock. Se persiste como entero estable:
// renumerar rompería los datos almacenados, así que los códigos son fijos.
//
//	1 = Purchase  (recepción de compra, entrada)
//	2 = Sale      (venta/despacho, salida)
//	3 = Adjustment(ajuste manual, signo según cantidad)
//	4 = Transfer  (traslado; reservado para multi-bodega)
//	5 = Return    (devolución de cliente, entrada)
//	6 = Damage    (merma/daño, salida)
type MovementType int

const (
	MovementPurchase   MovementType = 1
	MovementSale       MovementType = 2
	MovementAdjustment MovementType = 3
	MovementTransfer   MovementType = 4
	MovementReturn     MovementType = 5
	MovementDamage     MovementType = 6
)

// String devuelve el nombre legible del tipo.
func (t MovementType) String() string {
	switch t {
	case MovementPurchase:
		return "PURCHASE"
	case MovementSale:
		return "SALE"
	case MovementAdjustment:
		return "ADJUSTMENT"
	case MovementTransfer:
		return "TRANSFER"
	case MovementReturn:
		return "RETURN"
	case MovementDamage:
		return "DAMAGE"
	}
	return "UNKNOWN"
}

// IsValid indica si el código corresponde a un tipo conocido.
func (t MovementType) IsValid() bool {
	return t >= MovementPurchase && t <= MovementDamage
}

// ParseMovementType convierte el nombre legible a su código. ok=false si no existe.
func ParseMovementType(s string) (MovementType, bool) {
	switch s {
	case "PURCHASE":
		return MovementPurchase, true
	case "SALE":
		return MovementSale, true
	case "ADJUSTMENT":
		return MovementAdjustment, true
	case "TRANSFER":
		return MovementTransfer, true
	case "RETURN":
		return MovementReturn, true
	case "DAMAGE":
		return MovementDamage, true
	}
	return 0, false
}

// StockMovement es el registro canónico de auditoría: cada cambio de
// Product.CurrentStock corresponde exactamente a una fila aquí.
// Append-only: nunca se actualiza ni se borra.
type StockMovement struct {
	ID           string
	ProductID    string
	Type         MovementType
	Quantity     int64 // con signo: positivo entrada, negativo salida
	Reason       string
	Reference    string // correlación opcional a orden/factura (ej. "ORD-001")
	MovedBy      string // UserID del actor
	MovementDate time.Time
}
