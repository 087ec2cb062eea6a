package main

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// --- Structs ---

type Frame struct {
	Number int
	Data   []byte
}

// --- Video Pipeline ---

func generateFrames(frameChan chan<- Frame, s *scene, workers int) {
	var wg sync.WaitGroup
	totalFrames := len(s.views)
	tasks := make(chan int, workers*2)

	go func() {
		for i := 0; i < totalFrames; i++ {
			tasks <- i
		}
		close(tasks)
	}()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pngBuffer := new(bytes.Buffer)

			for frameNum := range tasks {
				img := s.renderFrame(frameNum)

				pngBuffer.Reset()
				err := png.Encode(pngBuffer, img)
				if err != nil {
					log.Printf("Failed to encode frame %d: %v", frameNum, err)
					continue
				}

				frameData := make([]byte, pngBuffer.Len())
				copy(frameData, pngBuffer.Bytes())

				frameChan <- Frame{Number: frameNum, Data: frameData}
			}
		}()
	}
	wg.Wait()
}

func runVideoPipeline(s *scene, args *Arguments) {
	totalFrames := len(s.views)
	if totalFrames == 0 {
		log.Fatal("Nothing to render: the replay has no frames.")
	}
	workers := args.Workers
	if workers < 1 {
		workers = 1
	}

	// --- FFMPEG Setup ---
	rate := fmt.Sprintf("%f", args.Framerate)
	ffmpegCmd := exec.Command("ffmpeg", "-y", "-f", "image2pipe", "-vcodec", "png", "-r", rate, "-i", "-", "-c:v", "libx264", "-b:v", args.Bitrate, "-pix_fmt", "yuv420p", "-r", rate, args.OutputFile)
	ffmpegIn, err := ffmpegCmd.StdinPipe()
	if err != nil {
		log.Fatalf("Failed to get ffmpeg stdin pipe: %v", err)
	}
	ffmpegCmd.Stderr = os.Stderr
	if err := ffmpegCmd.Start(); err != nil {
		log.Fatalf("Failed to start ffmpeg: %v", err)
	}

	// --- Concurrency Setup ---
	var wg sync.WaitGroup
	frameChan := make(chan Frame, int(args.Framerate)*2+1)

	// --- Encoder Goroutine (with reordering and timeout) ---
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ffmpegIn.Close()

		bar := progressbar.Default(int64(totalFrames), "Encoding")
		frameBuffer := make(map[int][]byte)
		nextFrameToWrite := 0
		const frameWaitTimeout = 60 * time.Second
		timeout := time.NewTimer(frameWaitTimeout)

		for nextFrameToWrite < totalFrames {
			select {
			case frame, ok := <-frameChan:
				if !ok {
					log.Printf("Frame channel closed prematurely. Last written frame: %d", nextFrameToWrite-1)
					return
				}

				frameBuffer[frame.Number] = frame.Data
				if !timeout.Stop() {
					<-timeout.C
				}
				timeout.Reset(frameWaitTimeout)

				for {
					data, found := frameBuffer[nextFrameToWrite]
					if !found {
						break
					}

					_, err := ffmpegIn.Write(data)
					if err != nil {
						log.Printf("Error writing frame %d to ffmpeg: %v", nextFrameToWrite, err)
					}
					bar.Add(1)

					delete(frameBuffer, nextFrameToWrite)
					nextFrameToWrite++
				}

			case <-timeout.C:
				log.Fatalf("Timeout: Stuck waiting for frame %d for over %v. A worker may have hung.", nextFrameToWrite, frameWaitTimeout)
				return
			}
		}
	}()

	// --- Frame Generation ---
	generateFrames(frameChan, s, workers)
	close(frameChan)

	wg.Wait()
	if err := ffmpegCmd.Wait(); err != nil {
		log.Fatalf("ffmpeg command failed: %v", err)
	}
}
