// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"net/http"
	"time"

	"github.com/Netcracker/qubership-accessibility-scanner/client"
	"github.com/Netcracker/qubership-accessibility-scanner/controller"
	"github.com/Netcracker/qubership-accessibility-scanner/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}

	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		panic(err)
	}
	setupLogLevel(systemInfoService.GetLogLevel())

	readyChan := make(chan bool)
	browserClient := client.NewBrowserClient(client.BrowserOptions{
		ChromePath:        systemInfoService.GetChromePath(),
		NavigationTimeout: systemInfoService.GetNavigationTimeout(),
	})
	scriptProvider := client.NewEngineScriptProvider(
		systemInfoService.GetAxeScriptPath(),
		systemInfoService.GetAxeScriptUrl(),
		systemInfoService.GetAxeScriptTTL(),
	)
	scanService := service.NewScanService(browserClient, scriptProvider, service.ScanOptions{
		AllowedSchemes:     systemInfoService.GetAllowedSchemes(),
		ScanTimeout:        systemInfoService.GetScanTimeout(),
		MaxConcurrentScans: systemInfoService.GetMaxConcurrentScans(),
	})

	scanController := controller.NewScanController(scanService)
	schemaController := controller.NewSchemaController()
	healthController := controller.NewHealthController(readyChan)

	router := mux.NewRouter()
	router.HandleFunc("/scan", controller.Recover(scanController.Scan)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/schema/{name}", schemaController.GetSchema).Methods(http.MethodGet)

	router.HandleFunc("/live", healthController.HandleLiveRequest).Methods(http.MethodGet)
	router.HandleFunc("/ready", healthController.HandleReadyRequest).Methods(http.MethodGet)
	readyChan <- true
	close(readyChan)

	srv := makeServer(systemInfoService, router)
	log.Fatalf("%v", srv.ListenAndServe())
}

func setupLogLevel(level string) {
	if level == "" {
		log.SetLevel(log.InfoLevel)
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %s, using info", level)
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

// writeTimeout leaves room for the response after a bounded scan; an unbounded
// scan gets an unbounded response.
func writeTimeout(scanTimeout time.Duration) time.Duration {
	if scanTimeout <= 0 {
		return 0
	}
	return scanTimeout + 30*time.Second
}

func makeServer(systemInfoService service.SystemInfoService, r *mux.Router) *http.Server {
	listenAddr := systemInfoService.GetListenAddress()

	log.Infof("Server running on %s", listenAddr)

	var corsOptions []handlers.CORSOption

	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization"}))
	corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{systemInfoService.GetOriginAllowed()}))
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "OPTIONS"}))

	return &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         listenAddr,
		WriteTimeout: writeTimeout(systemInfoService.GetScanTimeout()),
		ReadTimeout:  60 * time.Second,
	}
}
