package main

import (
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestHandleCatalogEventAcknowledges(t *testing.T) {
	msg := amqp.Delivery{
		DeliveryTag: 1,
		Body:        []byte(`{"action":"product.created","payload":{"id":"prod-1"}}`),
	}

	// A nil return acks the delivery; catalog events must never be requeued
	// by this service.
	assert.NoError(t, handleCatalogEvent(msg))
	assert.NoError(t, handleCatalogEvent(amqp.Delivery{}))
}
