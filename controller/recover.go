package controller

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/Netcracker/qubership-accessibility-scanner/exception"
	log "github.com/sirupsen/logrus"
)

// Recover turns a panicking handler into the generic scan failure response.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("Request failed with panic: %v", err)
				log.Tracef("Stacktrace: %v", string(debug.Stack()))
				RespondWithCustomError(w, exception.NewScanFailedError(fmt.Errorf("panic: %v", err)))
			}
		}()
		next.ServeHTTP(w, r)
	}
}
