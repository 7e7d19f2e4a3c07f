package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

// Service publishes subscription grant events. This bot only produces,
// downstream consumers live outside this process.
type Service struct {
	producer *kafka.Writer
}

func New(brokers []string, topic string, numPartitions, replicationFactor int) (*Service, error) {
	for _, broker := range brokers {
		if err := createTopic(topic, broker, numPartitions, replicationFactor); err != nil {
			return nil, err
		}
	}

	producer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Service{producer: producer}, nil
}

func (s *Service) SendMessage(ctx context.Context, key, value []byte) error {
	err := s.producer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to kafka: %v", err)
	}
	return nil
}

func (s *Service) Close() error {
	if err := s.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

func createTopic(topic, broker string, numPartitions, replicationFactor int) error {
	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return fmt.Errorf("failed to connect to kafka broker: %w", err)
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     numPartitions,
		ReplicationFactor: replicationFactor,
	})
	if err != nil {
		if errors.Is(err, kafka.TopicAlreadyExists) {
			log.Printf("kafka topic '%s' already exists", topic)
			return nil
		}
		return fmt.Errorf("failed to create Kafka topic '%s': %w", topic, err)
	} else {
		log.Printf("kafka topic '%s' created successfully", topic)
	}

	return nil
}
