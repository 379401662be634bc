package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/quadrantlabs/lsq/internal/services"
)

// seedQuestion is one entry of the built-in Honey & Mumford questionnaire.
// Question ids are assigned from position, starting at 1.
type seedQuestion struct {
	Text     string
	Category services.Category
}

var seedQuestions = []seedQuestion{
	{"I have strong beliefs about what is right and wrong, good and bad.", services.Theorist},
	{"I often act without considering the possible consequences.", services.Activist},
	{"I tend to solve problems using a step-by-step approach.", services.Reflector},
	{"I believe that formal procedures and policies restrict people.", services.Pragmatist},
	{"I have a reputation for saying what I think, simply and directly.", services.Activist},
	{"I often find that actions based on feelings are as sound as those based on careful thought and analysis.", services.Pragmatist},
	{"I like the sort of work where I have time for thorough preparation and implementation.", services.Reflector},
	{"I regularly question people about their basic assumptions.", services.Theorist},
	{"What matters most is whether something works in practice.", services.Pragmatist},
	{"I actively seek out new experiences.", services.Activist},
	{"When I hear about a new idea or approach I immediately start working out how to apply it in practice.", services.Pragmatist},
	{"I am keen on self-discipline such as watching my diet, taking regular exercise, sticking to a fixed routine etc.", services.Reflector},
	{"I take pride in doing a thorough job.", services.Reflector},
	{"I get on best with logical, analytical people and less well with spontaneous, \"irrational\" people.", services.Theorist},
	{"I take care over the interpretation of data available to me and avoid jumping to conclusions.", services.Reflector},
	{"I like to reach a decision carefully after weighing up many alternatives.", services.Reflector},
	{"I'm attracted more to novel, unusual ideas than to practical ones.", services.Theorist},
	{"I don't like disorganised things and prefer to fit things into a coherent pattern.", services.Theorist},
	{"I accept and stick to laid down procedures and policies so long as I regard them as an efficient way of getting the job done.", services.Pragmatist},
	{"I like to relate my actions to a general principle.", services.Theorist},
	{"In discussions I like to get straight to the point.", services.Activist},
	{"I tend to have distant, rather formal relationships with people at work.", services.Theorist},
	{"I thrive on the challenge of tackling something new and different.", services.Activist},
	{"I enjoy fun-loving, spontaneous people.", services.Activist},
	{"I pay meticulous attention to detail before coming to a conclusion.", services.Reflector},
	{"I find it difficult to produce ideas on impulse.", services.Reflector},
	{"I believe in coming to the point immediately.", services.Activist},
	{"I am careful not to jump to conclusions too quickly.", services.Reflector},
	{"I prefer to have as many sources of information as possible -the more data to mull over the better.", services.Reflector},
	{"Flippant people who don't take things seriously enough usually irritate me.", services.Theorist},
	{"I listen to other people's point of view before putting my own forward.", services.Reflector},
	{"I tend to be open about how I'm feeling.", services.Activist},
	{"In discussions I enjoy watching the manoeuvrings of the other participants.", services.Reflector},
	{"I prefer to respond to events on a spontaneous, flexible basis rather than plan things out in advance.", services.Activist},
	{"I tend to be attracted to techniques such as network analysis, flow charts, branching programmes, contingency planning, etc.", services.Theorist},
	{"It worries me if I have to rush out a piece of work to meet a tight deadline.", services.Reflector},
	{"I tend to judge people's ideas on their practical merits.", services.Pragmatist},
	{"Quiet, thoughtful people tend to make me feel uneasy.", services.Activist},
	{"I often get irritated by people who want to rush things.", services.Reflector},
	{"It is more important to enjoy the present moment than to think about the past or future.", services.Activist},
	{"I think that decisions based on a thorough analysis of all the information are sounder than those based on intuition.", services.Theorist},
	{"I tend to be a perfectionist.", services.Reflector},
	{"In discussions I usually produce lots of spontaneous ideas.", services.Activist},
	{"In meetings I put forward practical realistic ideas.", services.Pragmatist},
	{"More often than not, rules are there to be broken.", services.Activist},
	{"I prefer to stand back from a situation and consider all the perspectives.", services.Reflector},
	{"I can often see inconsistencies and weaknesses in other people's arguments.", services.Theorist},
	{"On balance I talk more than I listen.", services.Activist},
	{"I can often see better, more practical ways to get things done.", services.Pragmatist},
	{"I think written reports should be short and to the point.", services.Activist},
	{"I believe that rational, logical thinking should win the day.", services.Theorist},
	{"I tend to discuss specific things with people rather than engaging in social discussion.", services.Pragmatist},
	{"I like people who approach things realistically rather than theoretically.", services.Pragmatist},
	{"In discussions I get impatient with irrelevancies and digressions.", services.Activist},
	{"If I have a report to write I tend to produce lots of drafts before settling on the final version.", services.Reflector},
	{"I am keen to try things out to see if they work in practice.", services.Pragmatist},
	{"I am keen to reach answers via a logical approach.", services.Theorist},
	{"I enjoy being the one that talks a lot.", services.Activist},
	{"In discussions I often find I am the realist, keeping people to the point and avoiding wild speculations.", services.Pragmatist},
	{"I like to ponder many alternatives before making up my mind.", services.Reflector},
	{"In discussions with people I often find I am the most dispassionate and objective.", services.Theorist},
	{"In discussions I'm more likely to adopt a \"low profile\" than to take the lead and do most of the talking.", services.Reflector},
	{"I like to be able to relate current actions to a longer-term bigger picture.", services.Theorist},
	{"When things go wrong I am happy to shrug it off and \"put it down to experience\".", services.Activist},
	{"I tend to reject wild, spontaneous ideas as being impractical.", services.Pragmatist},
	{"It's best to think carefully before taking action.", services.Reflector},
	{"On balance I do the listening rather than the talking.", services.Reflector},
	{"I tend to be tough on people who find it difficult to adopt a logical approach.", services.Theorist},
	{"Most times I believe the end justifies the means.", services.Activist},
	{"I don't mind hurting people's feelings so long as the job gets done.", services.Activist},
	{"I find the formality of having specific objectives and plans stifling.", services.Activist},
	{"I'm usually one of the people who puts life into a party.", services.Activist},
	{"I do whatever is expedient to get the job done.", services.Pragmatist},
	{"I quickly get bored with methodical, detailed work.", services.Activist},
	{"I am keen on exploring the basic assumptions, principles and theories underpinning things and events.", services.Theorist},
	{"I'm always interested to find out what people think.", services.Reflector},
	{"I like meetings to be run on methodical lines, sticking to laid down agenda, etc.", services.Theorist},
	{"I steer clear of subjective or ambiguous topics.", services.Theorist},
	{"I enjoy the drama and excitement of a crisis situation.", services.Activist},
	{"People often find me insensitive to their feelings.", services.Activist},
}

// SeedQuestions inserts the built-in questionnaire on first run. A database
// that already has questions is left untouched.
func (s *SQLiteStore) SeedQuestions() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	insertQ, err := tx.Prepare(`INSERT INTO questions (id, category) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare question insert: %w", err)
	}
	defer insertQ.Close()
	insertText, err := tx.Prepare(`INSERT INTO question_texts (question_id, locale, text) VALUES (?, 'en', ?)`)
	if err != nil {
		return fmt.Errorf("prepare question text insert: %w", err)
	}
	defer insertText.Close()

	for i, q := range seedQuestions {
		id := i + 1
		if _, err := insertQ.Exec(id, string(q.Category)); err != nil {
			return fmt.Errorf("seed question %d: %w", id, err)
		}
		if _, err := insertText.Exec(id, q.Text); err != nil {
			return fmt.Errorf("seed question text %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	log.Printf("seeded %d questions", len(seedQuestions))
	return nil
}

// SeedAdmin creates the bootstrap admin account if no user has that email.
func (s *SQLiteStore) SeedAdmin(email, name, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	existing, err := s.FindUserByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &services.User{
		ID:        "u-admin",
		Email:     email,
		Name:      name,
		PassHash:  hash,
		Admin:     true,
		CreatedAt: time.Now().UTC(),
	}
	if admin.Name == "" {
		admin.Name = email
	}
	if err := s.AddUser(admin); err != nil {
		return err
	}
	log.Printf("seeded admin account %s", email)
	return nil
}
