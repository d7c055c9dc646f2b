package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/isdelr/mycarexpenses-be/internal/database"
	"github.com/isdelr/mycarexpenses-be/internal/models"
)

// CarServiceProvider defines the interface for car services.
type CarServiceProvider interface {
	ListCars(ctx context.Context, userID int64) ([]models.Car, error)
	CreateCar(ctx context.Context, userID int64, car models.NewCar) (int64, error)
	DeleteCar(ctx context.Context, userID, carID int64) error
}

// CarService provides business logic for the cars a user owns.
type CarService struct {
	db *sql.DB
}

// NewCarService creates a new CarService.
func NewCarService(db *sql.DB) *CarService {
	return &CarService{db: db}
}

// ListCars returns every car owned by userID, oldest first.
func (s *CarService) ListCars(ctx context.Context, userID int64) ([]models.Car, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT car_id, user_id, make, model, year, license_plate, fuel_type
		FROM cars WHERE user_id = ? ORDER BY car_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := make([]models.Car, 0)
	for rows.Next() {
		var car models.Car
		var year sql.NullInt64
		var plate, fuel sql.NullString
		if err := rows.Scan(&car.ID, &car.UserID, &car.Make, &car.Model, &year, &plate, &fuel); err != nil {
			return nil, err
		}
		if year.Valid {
			y := int(year.Int64)
			car.Year = &y
		}
		if plate.Valid {
			car.LicensePlate = &plate.String
		}
		if fuel.Valid {
			car.FuelType = &fuel.String
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

// CreateCar stores a new car owned by userID and returns its id.
func (s *CarService) CreateCar(ctx context.Context, userID int64, car models.NewCar) (int64, error) {
	car.Make = strings.TrimSpace(car.Make)
	car.Model = strings.TrimSpace(car.Model)
	if car.Make == "" || car.Model == "" {
		return 0, fmt.Errorf("%w: make and model are required", ErrValidation)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cars (user_id, make, model, year, license_plate, fuel_type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, car.Make, car.Model, car.Year, car.LicensePlate, car.FuelType,
	)
	if err != nil {
		// A signed token can outlive its account.
		if database.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteCar removes a car owned by userID together with its expenses.
// A car owned by somebody else is reported exactly like a missing one.
func (s *CarService) DeleteCar(ctx context.Context, userID, carID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM cars WHERE car_id = ? AND user_id = ?", carID, userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: car %d", ErrNotFound, carID)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE car_id = ?", carID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cars WHERE car_id = ?", carID); err != nil {
		return err
	}
	return tx.Commit()
}
