package domain

import "time"

// Product is a storefront catalog entry as served by the store backend.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"nombre"`
	Description   string  `json:"descripcion"`
	Price         int64   `json:"precio"`
	Stock         int     `json:"stock"`
	ImageURL      string  `json:"imagen,omitempty"`
	AverageRating float64 `json:"rating_promedio"`
	TotalSold     int     `json:"total_vendidos"`
}

// Plan is a gym membership plan.
type Plan struct {
	ID             int64  `json:"id"`
	Name           string `json:"nombre"`
	Description    string `json:"descripcion"`
	Price          int64  `json:"precio"`
	DurationMonths int    `json:"duracion_meses"`
}

// Subscription is the user's active membership, if any.
type Subscription struct {
	ID        int64     `json:"id"`
	Plan      Plan      `json:"plan"`
	StartsAt  time.Time `json:"fecha_inicio"`
	ExpiresAt time.Time `json:"fecha_vencimiento"`
	Active    bool      `json:"activa"`
	BuyOrder  string    `json:"orden_compra"`
}

// Review is a product review. Hidden reviews are only served to staff.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"producto"`
	UserID    int64     `json:"user"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comentario"`
	CreatedAt time.Time `json:"creado_en"`
	Visible   bool      `json:"is_visible"`
}

// OrderItem is a purchased line with the price frozen at purchase time.
type OrderItem struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"producto"`
	Name      string `json:"nombre_producto"`
	ImageURL  string `json:"imagen_producto,omitempty"`
	Quantity  int    `json:"cantidad"`
	UnitPrice int64  `json:"precio_al_momento_compra"`
}

// Order is a completed cart purchase in the user's history.
type Order struct {
	ID        int64       `json:"id"`
	BuyOrder  string      `json:"orden_compra"`
	Total     int64       `json:"monto_total"`
	CreatedAt time.Time   `json:"creado_en"`
	Status    string      `json:"estado"`
	Items     []OrderItem `json:"items"`
}

// NewsPost is a blog/news entry.
type NewsPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"titulo"`
	Body      string    `json:"contenido"`
	ImageURL  string    `json:"imagen,omitempty"`
	CreatedAt time.Time `json:"creado_en"`
}

// Notification is a broadcast message shown to members.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"titulo"`
	Message   string    `json:"mensaje"`
	CreatedAt time.Time `json:"creado_en"`
}

// Profile is the member profile behind the QR identity card.
type Profile struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FirstName      string `json:"nombre"`
	LastName       string `json:"apellidos"`
	RUT            string `json:"rut"`
	Phone          string `json:"numero_personal"`
	EmergencyPhone string `json:"numero_emergencia"`
	Role           string `json:"role"`
	Active         bool   `json:"activo"`
	AvatarURL      string `json:"avatar,omitempty"`
}
