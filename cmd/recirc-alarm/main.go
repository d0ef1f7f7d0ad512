// Command recirc-alarm monitors a water-recirculation device: it shows the
// water temperature on an OLED and escalates an audible alert the longer
// the device has been running.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/recirc-alarm/internal/buzzer"
	"github.com/sweeney/recirc-alarm/internal/display"
	"github.com/sweeney/recirc-alarm/internal/logic"
	"github.com/sweeney/recirc-alarm/internal/mqtt"
	"github.com/sweeney/recirc-alarm/internal/sensor"
	"github.com/sweeney/recirc-alarm/internal/status"
	"github.com/sweeney/recirc-alarm/internal/web"
)

func main() {
	poll := flag.Duration("poll", time.Second, "Control cycle interval")
	warn2 := flag.Duration("warn2", logic.DefaultThresholds.First, "Run time before the second warning")
	warn3 := flag.Duration("warn3", logic.DefaultThresholds.Second, "Run time before the third warning")
	cont := flag.Duration("continuous", logic.DefaultThresholds.Final, "Run time before the continuous alert")
	pulseOn := flag.Duration("pulse-on", buzzer.DefaultPulseOn, "Buzzer pulse on duration")
	pulseOff := flag.Duration("pulse-off", buzzer.DefaultPulseOff, "Buzzer pulse off duration")
	pinBuzzer := flag.Int("pin-buzzer", buzzer.DefaultPin, "BCM pin number for the buzzer")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	printTemp := flag.Bool("print-temp", false, "Print current temperature and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	wsBroker := flag.String("ws-broker", "=broker", `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)

	flag.Parse()

	thresholds := logic.Thresholds{First: *warn2, Second: *warn3, Final: *cont}
	ws := resolveWSBroker(*wsBroker, *broker)
	if err := run(*poll, thresholds, *pulseOn, *pulseOff, *pinBuzzer, *broker, *heartbeat, *printTemp, *httpAddr, ws); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll time.Duration, thresholds logic.Thresholds, pulseOn, pulseOff time.Duration, pinBuzzer int, broker string, heartbeat time.Duration, printTemp bool, httpAddr, wsBroker string) error {
	// Initialize sensor. A missing probe is not fatal: the device keeps
	// running with the fault visible on the display.
	var probe sensor.Probe
	realProbe, err := sensor.NewRealProbe()
	if err != nil {
		log.Printf("sensor init failed, running with fault display: %v", err)
		probe = sensor.Disconnected{}
	} else {
		probe = realProbe
	}
	defer probe.Close()

	// Print temperature mode
	if printTemp {
		c, err := probe.ReadCelsius()
		if err != nil {
			return fmt.Errorf("read sensor: %w", err)
		}
		fmt.Println(logic.FormatCelsius(c))
		return nil
	}

	// Initialize display. Failure is fatal: an alarm nobody can see is
	// worse than a device that refuses to start.
	surface, err := display.NewRealSurface()
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer surface.Close()
	screen := display.NewScreen(surface, display.DefaultWidth, display.DefaultHeight)

	// Initialize buzzer. Also fatal: the whole point is the alert.
	sounder, err := buzzer.NewRealSounder(pinBuzzer)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	defer sounder.Close()

	// Initialize MQTT (connects in the background, buffers while down)
	publisher := mqtt.NewRealPublisher(broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      poll.Milliseconds(),
		PulseOnMs:   pulseOn.Milliseconds(),
		PulseOffMs:  pulseOff.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
		WSBroker:    wsBroker,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: poll=%v thresholds=%v/%v/%v broker=%s heartbeat=%v",
		poll, thresholds.First, thresholds.Second, thresholds.Final, broker, heartbeat)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(probe, screen, sounder, publisher, publisher, tracker, thresholds, pulseOn, pulseOff, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(probe sensor.Probe, screen *display.Screen, sounder buzzer.Sounder, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, thresholds logic.Thresholds, pulseOn, pulseOff, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	escalator := logic.NewEscalator(startTime, thresholds)
	renderer := logic.NewRenderer()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			reading, err := probe.ReadCelsius()
			if err != nil {
				log.Printf("sensor read error: %v", err)
				reading = logic.FaultSentinel
			}

			// Display first: the reading must reach the screen even when
			// the buzzer is about to block on a pulse.
			frame := renderer.Render(reading)
			if err := screen.Show(frame); err != nil {
				log.Printf("display error: %v", err)
				// Don't crash on display failure mid-run
			}

			events := escalator.Advance(t)
			for _, event := range events {
				log.Printf("alert: %s stage=%s elapsed=%v", event.Type, event.Stage, event.Elapsed.Truncate(time.Second))
				if err := sounder.Pulse(pulseOn, pulseOff); err != nil {
					log.Printf("buzzer error: %v", err)
				}
				// Per-cycle continuous pulses would flood the broker;
				// only stage transitions are published.
				if event.Type == logic.EventEscalation {
					if err := publisher.Publish(event); err != nil {
						log.Printf("publish error: %v", err)
					}
				}
			}

			// Check for heartbeat
			if hbData := escalator.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v stage=%s escalations=%d continuous=%d",
					hbData.Uptime, hbData.Stage, hbData.Counts.Escalations, hbData.Counts.ContinuousPulses)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					updateTracker(tracker, escalator, renderer)
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				updateTracker(tracker, escalator, renderer)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

func updateTracker(tracker *status.Tracker, escalator *logic.Escalator, renderer *logic.Renderer) {
	temp, valid := renderer.LastValid()
	tracker.Update(escalator.Stage(), temp, valid, renderer.FaultShown(), escalator.EventCountsSnapshot())
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; empty disables.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Printf("ws-broker: cannot parse --broker %q: %v", broker, err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}
