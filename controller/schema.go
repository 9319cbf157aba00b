package controller

import (
	"net/http"

	"github.com/Netcracker/qubership-accessibility-scanner/exception"
	"github.com/Netcracker/qubership-accessibility-scanner/view"
	"github.com/invopop/jsonschema"
)

type SchemaController interface {
	GetSchema(w http.ResponseWriter, r *http.Request)
}

func NewSchemaController() SchemaController {
	return &schemaControllerImpl{
		schemas: map[string]interface{}{
			"scan-result":         generateSchema[view.ScanResult](),
			"violation":           generateSchema[view.Violation](),
			"impact-distribution": generateSchema[[]view.ImpactBucket](),
		},
	}
}

type schemaControllerImpl struct {
	schemas map[string]interface{}
}

func (s *schemaControllerImpl) GetSchema(w http.ResponseWriter, r *http.Request) {
	name, err := getUnescapedStringParam(r, "name")
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "name", "value": getStringParam(r, "name")},
			Debug:   err.Error(),
		})
		return
	}
	schema, exists := s.schemas[name]
	if !exists {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Params:  map[string]interface{}{"param": "name", "value": name},
		})
		return
	}
	respondWithJson(w, http.StatusOK, schema)
}

func generateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
