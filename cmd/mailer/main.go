package main

import (
	"log"

	"github.com/courseforge/courseforge/config"
	"github.com/courseforge/courseforge/infra/queue"
	"github.com/courseforge/courseforge/internal/mailer"
)

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()

	log.Println("Mailer starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	// ---------- Init Service ----------
	mailService := mailer.NewMailService(
		cfg.MailHost,
		cfg.MailPort,
		cfg.MailUser,
		cfg.MailPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	// ---------- Init Handler ----------
	handler := mailer.NewOtpEmailHandler(mailService)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	// ---------- Start Listening ----------
	log.Println("Mailer listening for events...")
	consumer.Listen()
}
