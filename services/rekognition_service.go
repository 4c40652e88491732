package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// Generic labels ("Food", "Meal", "Dish"…) that carry no information about
// what is actually on the plate.
var genericFoodLabels = map[string]bool{
	"food": true, "meal": true, "dish": true, "plate": true,
	"cutlery": true, "produce": true, "snack": true,
}

// RecognizeFoodLabels returns the most specific food labels detected in a
// base64-encoded photo, best first.
func (r *RekognitionService) RecognizeFoodLabels(base64Img string) ([]string, error) {
	data, err := decodeDataURI(base64Img)
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name == nil || genericFoodLabels[strings.ToLower(*l.Name)] {
			continue
		}
		labels = append(labels, *l.Name)
	}
	if len(labels) == 0 {
		return nil, errors.New("no food detected in image")
	}
	return labels, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, errors.New("invalid data URI")
	}
	return base64.StdEncoding.DecodeString(uri[idx+1:])
}
