package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"churn_backend/internal/feature/churn/adapters/artifactstore"
	"churn_backend/internal/feature/churn/adapters/dataset"
	"churn_backend/internal/feature/churn/domain/entity"
	"churn_backend/internal/feature/churn/usecase"
)

func main() {
	dataPath := flag.String("data", "data/Telco-Customer-Churn.csv", "training table (csv or xlsx)")
	artifactPath := flag.String("artifact", "data/churn_model.json", "output artifact path")
	flag.Parse()

	f, err := os.Open(*dataPath)
	if err != nil {
		log.Fatal("failed to open training data: ", err)
	}
	defer f.Close()

	var examples []entity.TrainingExample
	if strings.HasSuffix(strings.ToLower(*dataPath), ".xlsx") {
		examples, err = dataset.ReadTrainingXLSX(f)
	} else {
		examples, err = dataset.ReadTrainingCSV(f)
	}
	if err != nil {
		log.Fatal("failed to parse training data: ", err)
	}

	uc := usecase.NewChurnUsecase(artifactstore.NewFileStore(*artifactPath))

	artifact, err := uc.Train(context.Background(), examples)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("trained artifact %s on %d rows -> %s", artifact.ID, artifact.TrainingRows, *artifactPath)
}
