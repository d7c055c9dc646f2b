package models

// Car is a vehicle owned by exactly one user.
type Car struct {
	ID           int64   `json:"car_id"`
	UserID       int64   `json:"-"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         *int    `json:"year"`
	LicensePlate *string `json:"license_plate"`
	FuelType     *string `json:"fuel_type"`
}

// NewCar is the input for creating a car.
type NewCar struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         *int    `json:"year"`
	LicensePlate *string `json:"license_plate"`
	FuelType     *string `json:"fuel_type"`
}
