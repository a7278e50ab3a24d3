package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pulsebot/internal/config"
	"pulsebot/internal/domain"
)

// Cliente de terminal que reemplaza el popup gráfico original: cada intervalo
// pide la siguiente pregunta rotando los tipos y lee la respuesta por stdin.
// Todo el estado del prompt vive en locales; no hay globals ambientales.

var questionTypeCycle = []string{
	domain.QuestionTypeComment,
	domain.QuestionTypeEmoji,
	domain.QuestionTypeRadio,
}

var emojiScale = map[int]string{1: "😠", 2: "🙁", 3: "😐", 4: "🙂", 5: "😀"}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	userID := os.Getenv("PULSEBOT_USER_ID")
	interval := time.Duration(cfg.FeedbackInterval) * time.Second
	client := &http.Client{Timeout: 10 * time.Second}
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("PulseBot popup running (interval: %s)...\n", interval)

	for typeIndex := 0; ; typeIndex = (typeIndex + 1) % len(questionTypeCycle) {
		time.Sleep(interval)

		questionType := questionTypeCycle[typeIndex]
		question, err := fetchNextQuestion(client, cfg.APIURL, questionType, userID)
		if err != nil {
			fmt.Printf("error fetching question: %v\n", err)
			continue
		}
		if question == nil {
			fmt.Println("no suitable questions available")
			continue
		}

		if err := promptAndSubmit(client, reader, cfg.APIURL, userID, *question); err != nil {
			fmt.Printf("error sending feedback: %v\n", err)
		}
	}
}

func fetchNextQuestion(client *http.Client, apiURL, questionType, userID string) (*domain.Question, error) {
	url := fmt.Sprintf("%s/questions/%s", apiURL, questionType)
	if userID != "" {
		url += "?user_id=" + userID
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Question *domain.Question `json:"question"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Question, nil
}

func promptAndSubmit(client *http.Client, reader *bufio.Reader, apiURL, userID string, question domain.Question) error {
	fmt.Println()
	fmt.Println("===== PulseBot Feedback =====")
	fmt.Println(question.QuestionText)

	switch question.QuestionType {
	case domain.QuestionTypeEmoji:
		fmt.Println("[1] 😠  [2] 🙁  [3] 😐  [4] 🙂  [5] 😀")
		fmt.Print("Respuesta 1-5, [d]eferir o [s]altar: ")
	case domain.QuestionTypeRadio:
		fmt.Println("Opciones: Yes / No / Maybe")
		fmt.Print("Respuesta, [d]eferir o [s]altar: ")
	default:
		fmt.Print("Comentario, [d]eferir o [s]altar: ")
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	line = strings.TrimSpace(line)

	switch strings.ToLower(line) {
	case "d":
		return updateState(client, apiURL, question.ID, "defer")
	case "s":
		return updateState(client, apiURL, question.ID, "skip")
	case "":
		fmt.Println("input required, deferring")
		return updateState(client, apiURL, question.ID, "defer")
	}

	payload := map[string]interface{}{
		"question_id": question.ID,
	}
	if userID != "" {
		payload["user_id"] = userID
	}

	switch question.QuestionType {
	case domain.QuestionTypeEmoji:
		value, err := strconv.Atoi(line)
		if err != nil || value < 1 || value > 5 {
			fmt.Println("invalid emoji value, skipping submit")
			return nil
		}
		payload["response_emoji"] = value
		fmt.Printf("selected %s\n", emojiScale[value])
	case domain.QuestionTypeRadio:
		payload["response_radio"] = line
	default:
		payload["response_text"] = line
	}

	if err := postJSON(client, apiURL+"/responses", payload); err != nil {
		return err
	}
	fmt.Println("feedback submitted")
	return nil
}

func updateState(client *http.Client, apiURL, questionID, action string) error {
	err := postJSON(client, apiURL+"/responses/update_state", map[string]interface{}{
		"question_id": questionID,
		"action":      action,
	})
	if err != nil {
		return err
	}
	fmt.Printf("question %s recorded as %s\n", questionID, action)
	return nil
}

func postJSON(client *http.Client, url string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
