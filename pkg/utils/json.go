package utils

import (
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func PrettyJson(in any) ([]byte, error) {
	return json.MarshalIndent(in, "", "  ")
}

// Yaml renders in through its JSON form so that json tags and custom marshalers apply.
func Yaml(in any) ([]byte, error) {
	buffer, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(buffer, &generic); err != nil {
		return nil, err
	}

	return yaml.Marshal(generic)
}
