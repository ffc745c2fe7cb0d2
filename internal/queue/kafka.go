package queue

import (
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/seoworks/indexable/internal/model"
	"github.com/sirupsen/logrus"
)

var _ IndexableQueue = (*KafkaQueue)(nil)

type KafkaQueue struct {
	producer *kafka.Producer
}

func NewKafkaQueue(brokers string) (*KafkaQueue, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return nil, err
	}

	// Drain delivery reports so the internal queue never fills up.
	go func() {
		for e := range producer.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				logrus.Errorf("kafka delivery failed: %v", m.TopicPartition.Error)
			}
		}
	}()

	return &KafkaQueue{producer: producer}, nil
}

func (k *KafkaQueue) PublishCreated(ctx context.Context, ind *model.Indexable) error {
	return k.publish(IndexableCreatedTopic, ind)
}

func (k *KafkaQueue) PublishUpdated(ctx context.Context, ind *model.Indexable) error {
	return k.publish(IndexableUpdatedTopic, ind)
}

func (k *KafkaQueue) publish(topic string, ind *model.Indexable) error {
	payload, err := json.Marshal(ind)
	if err != nil {
		return err
	}

	return k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          payload,
	}, nil)
}

func (k *KafkaQueue) Close() error {
	k.producer.Flush(5000)
	k.producer.Close()

	return nil
}
