package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"storefront-orders/internal/kafka"
	"storefront-orders/internal/logger"
	"storefront-orders/models"

	"github.com/brianvoe/gofakeit/v6"
	kafkago "github.com/segmentio/kafka-go"
)

type fakeCustomer struct {
	First string `fake:"{firstname}"`
	Last  string `fake:"{lastname}"`
	Email string `fake:"{email}"`
}

type fakeItem struct {
	ProductName string  `fake:"{productname}"`
	Quantity    int     `fake:"{number:1,5}"`
	Price       float64 `fake:"{price:99,4999}"`
	Color       string  `fake:"{safecolor}"`
	Engraving   string  `fake:"{randomstring:[Happy Birthday,Congrats,With love]}"`
}

var cities = []struct{ city, state, zip string }{
	{"Bengaluru", "Karnataka", "560038"},
	{"Mumbai", "Maharashtra", "400001"},
	{"Chennai", "Tamil Nadu", "600001"},
	{"Jaipur", "Rajasthan", "302001"},
}

func fakeOrder() (models.OrderInput, error) {
	var c fakeCustomer
	if err := gofakeit.Struct(&c); err != nil {
		return models.OrderInput{}, err
	}

	items := make([]models.LineItem, gofakeit.Number(1, 3))
	for i := range items {
		var fi fakeItem
		if err := gofakeit.Struct(&fi); err != nil {
			return models.OrderInput{}, err
		}
		price := fi.Price
		items[i] = models.LineItem{
			ProductName: fi.ProductName,
			Quantity:    fi.Quantity,
			Price:       &price,
			Customization: models.CustomizationMap{
				"color":          fi.Color,
				"Engraving Text": fi.Engraving,
			},
		}
	}

	loc := cities[gofakeit.Number(0, len(cities)-1)]
	return models.OrderInput{
		Customer: models.Customer{
			Name:  c.First + " " + c.Last,
			Email: c.Email,
			Phone: "+91 " + gofakeit.RandomString([]string{"6", "7", "8", "9"}) + gofakeit.DigitN(9),
		},
		Shipping: models.ShippingAddress{
			Street:  gofakeit.Street(),
			City:    loc.city,
			State:   loc.state,
			Zip:     loc.zip,
			Country: "India",
		},
		Items:         items,
		PaymentMethod: gofakeit.RandomString([]string{"cod", "upi", "card"}),
		Notes:         gofakeit.Sentence(6),
	}, nil
}

func main() {
	log := logger.New(logger.Config{Level: logger.LevelInfo, Format: "text", Component: "producer"})

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Fatal("KAFKA_BROKERS is not set")
	}
	intakeTopic := envOr("INTAKE_TOPIC", "checkout_submissions")
	brokerList := strings.Split(brokers, ",")

	writer := kafka.NewWriter(brokerList, intakeTopic)
	defer func() {
		if err := writer.Close(); err != nil {
			log.Error("failed to close writer", "error", err)
		}
	}()

	gofakeit.Seed(time.Now().UnixNano())
	log.Info("starting producer", "topic", intakeTopic)

	// 5 валидных сообщений
	for i := 0; i < 5; i++ {
		order, err := fakeOrder()
		if err != nil {
			log.Error("failed to generate order", "error", err)
			continue
		}
		payload, err := json.Marshal(order)
		if err != nil {
			log.Error("failed to marshal order", "error", err)
			continue
		}

		key := gofakeit.UUID()
		if err := writer.WriteMessages(context.Background(), kafkago.Message{Key: []byte(key), Value: payload}); err != nil {
			log.Error("failed to publish order", "key", key, "error", err)
		} else {
			log.Info("checkout submission published", "key", key, "items", len(order.Items))
		}

		time.Sleep(time.Second)
	}

	// невалидное сообщение, сервис переложит его в DLQ
	err := writer.WriteMessages(context.Background(), kafkago.Message{
		Key:   []byte("err_" + gofakeit.UUID()),
		Value: []byte(`{"invalid": json}`),
	})
	if err != nil {
		log.Error("failed to publish malformed message", "error", err)
	} else {
		log.Info("malformed message published")
	}

	log.Info("producer finished")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
