package conversation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fridaybot/backend/internal/ai"
	"github.com/fridaybot/backend/internal/models"
)

// intentLabels are the candidate labels for the five-way top-level intent
// classification. They match the conversation states they route to.
var intentLabels = []string{
	string(models.StateDiscussion),
	string(models.StateModifyBudget),
	string(models.StateTrackExpense),
	string(models.StateAccountInquiry),
	string(models.StateAboutApp),
}

var intentExamples = []ai.Example{
	// Budget setup
	{Text: "Add a budget of 100 dollars for Transportation items", Label: string(models.StateModifyBudget)},
	{Text: "Make a new category for me called Health", Label: string(models.StateModifyBudget)},
	{Text: "Change my budget category Health to allow me to spend 56 dollars", Label: string(models.StateModifyBudget)},
	// Expense tracking
	{Text: "I spent 10 dollars at McDonalds today", Label: string(models.StateTrackExpense)},
	{Text: "I bought a brand new TV at BestBuy yesterday", Label: string(models.StateTrackExpense)},
	{Text: "I got some sneakers for a friend yesterday, it cost about $200", Label: string(models.StateTrackExpense)},
	// Account inquiry
	{Text: "What is my spending breakdown?", Label: string(models.StateAccountInquiry)},
	{Text: "What are my budget categories?", Label: string(models.StateAccountInquiry)},
	{Text: "How much have I spent for the past 30 days", Label: string(models.StateAccountInquiry)},
	{Text: "How much money do I have remaining in my total budget", Label: string(models.StateAccountInquiry)},
	// About the app
	{Text: "What does this app do?", Label: string(models.StateAboutApp)},
	{Text: "What can you help me with?", Label: string(models.StateAboutApp)},
	// Discussion
	{Text: "Tell me about yourself", Label: string(models.StateDiscussion)},
	{Text: "I love you so much", Label: string(models.StateDiscussion)},
	{Text: "How are you doing?", Label: string(models.StateDiscussion)},
	{Text: "I need someone to talk to", Label: string(models.StateDiscussion)},
	{Text: "Hey so I need some inspiration to start my day", Label: string(models.StateDiscussion)},
	{Text: "Do you have any advice for me to improve my spending habits?", Label: string(models.StateDiscussion)},
}

// Setup sub-intent labels.
const (
	setupChangeBudget = "ChangeBudget"
	setupChangeName   = "ChangeName"
	setupUnclear      = "Unclear"
)

var setupLabels = []string{setupChangeBudget, setupChangeName, setupUnclear}

var setupExamples = []ai.Example{
	{Text: "Delete the Housing category", Label: setupChangeBudget},
	{Text: "I want to setup my budget", Label: setupChangeBudget},
	{Text: "Can I setup my budget?", Label: setupChangeBudget},
	{Text: "Change my name to something cool", Label: setupChangeName},
	{Text: "Change my phone number", Label: setupUnclear},
	{Text: "Make my budget bigger", Label: setupUnclear},
}

// Inquiry sub-type labels.
const (
	inquiryBudgets      = "Budgets"
	inquiryTransactions = "Transactions"
)

var inquiryLabels = []string{inquiryBudgets, inquiryTransactions}

var inquiryExamples = []ai.Example{
	{Text: "Show me my spending", Label: inquiryTransactions},
	{Text: "How much did I spend yesterday?", Label: inquiryTransactions},
	{Text: "Let me see an expenditure log of my recent transactions", Label: inquiryTransactions},
	{Text: "What are my budgets this week?", Label: inquiryBudgets},
	{Text: "Show me my budget categories", Label: inquiryBudgets},
	{Text: "How much do I have left in my budget?", Label: inquiryBudgets},
}

// categoryExamples steer the per-item category labeling. The candidate
// labels are the user's current category names, passed separately.
var categoryExamples = []ai.Example{
	{Text: "house", Label: "Housing"},
	{Text: "electric bill", Label: "Housing"},
	{Text: "utility bill", Label: "Housing"},
	{Text: "couch", Label: "Supplies"},
	{Text: "shelf", Label: "Supplies"},
	{Text: "curtain rod", Label: "Supplies"},
	{Text: "dress", Label: "Clothing"},
	{Text: "shoes", Label: "Clothing"},
	{Text: "rain jacket", Label: "Clothing"},
	{Text: "milk", Label: "Food"},
	{Text: "water", Label: "Food"},
	{Text: "doritos", Label: "Food"},
	{Text: "car", Label: "Transportation"},
	{Text: "bus", Label: "Transportation"},
	{Text: "gel", Label: "Health"},
	{Text: "shampoo", Label: "Health"},
	{Text: "gym equipment", Label: "Health"},
	{Text: "movie ticket", Label: "Entertainment"},
	{Text: "concert", Label: "Entertainment"},
}

// namePrompt extracts a display name from a registration message. The
// generation returns the literal token None when no name is found or the
// name is the assistant's own.
func namePrompt(body, assistantName string) ai.GenerateRequest {
	prompt := fmt.Sprintf(`Only return the name from the sentence below, if name not found return None
Also, if the name is %s, return None

Sentence: I'm Bob
Name: Bob
Sentence: T'is I, Helen Mortimer
Name: Helen
Sentence: Hey, its travis speaking
Name: Travis
Sentence: How are you doing?
Name: None
Sentence: My name is %s
Name: None
Sentence: bill is my name
Name: Bill
Sentence: Will is too good
Name: None
Sentence: hello
Name: Hello
Sentence: %s
Name:
`, assistantName, assistantName, body)

	return ai.GenerateRequest{
		Prompt:    prompt,
		MaxTokens: 10,
		TopP:      1,
		Stop:      []string{"Sentence:"},
	}
}

// discussionPrompt primes the open-ended discussion capability with the
// assistant's persona and the recent conversation history.
func discussionPrompt(history []models.ConversationMessage, userName, assistantName string) ai.GenerateRequest {
	var b strings.Builder

	fmt.Fprintf(&b, `The following is a conversation with an AI assistant named %[1]s and the user %[2]s.
The AI assistant is helpful, clever, optimistic, motivational, reflective and very friendly.
The AI assistant will mostly focus on topics related to budgeting, personal finance, saving and earning money.
The purpose of the AI assistant is to inspire %[2]s to save money and spend money wisely.
%[1]s should answer in a short text about a sentence long.
The AI assistant has the functionality to help %[2]s with these actions:
- track spending
- allocate budgets
- setup categories for budgeting
- give reports on spending
- have helpful discussions about budgeting and finance
- provide inspiration

`, assistantName, userName)

	for _, message := range history {
		fmt.Fprintf(&b, "%s:%s\n", message.Author, message.Body)
	}

	fmt.Fprintf(&b, "%s:", assistantName)

	return ai.GenerateRequest{
		Prompt:           b.String(),
		Temperature:      1.0,
		MaxTokens:        500,
		TopP:             1,
		FrequencyPenalty: 2.0,
		PresencePenalty:  2.0,
		Stop:             []string{fmt.Sprintf("%s:", userName)},
	}
}

// aboutPrompt answers a question about what the assistant can do.
func aboutPrompt(question, userName, assistantName string) ai.GenerateRequest {
	prompt := fmt.Sprintf(`The following is a question and answer discussion with an AI assistant named %[1]s and the user %[2]s.
The AI must be able to inform %[2]s of all the functionality that %[1]s can perform.
The AI assistant has the functionality to help %[2]s with these actions:
- track spending
- allocate budgets
- setup categories for budgeting
- visualize spending with graphs
- give reports on spending
- have helpful discussions about budgeting and finance
- provide inspiration

%[2]s: %[3]s
%[1]s:`, assistantName, userName, question)

	return ai.GenerateRequest{
		Prompt:           prompt,
		Temperature:      0.6,
		MaxTokens:        132,
		TopP:             1,
		FrequencyPenalty: 1.7,
		PresencePenalty:  1.7,
		Stop:             []string{fmt.Sprintf("%s:", userName)},
	}
}

// elaborationPrompt asks the user to elaborate on an incomplete request.
func elaborationPrompt(body, userName string) ai.GenerateRequest {
	prompt := fmt.Sprintf(`Assume the sentence is incomplete, and the task is to ask %[1]s to elaborate with more information about what they want to do.

%[1]s: I would like to delete the category
AI: I can do that for you! Can you tell me a little more about what you would like me to do?
%[1]s: %[2]s
AI:`, userName, body)

	return ai.GenerateRequest{
		Prompt:           prompt,
		Temperature:      0.6,
		MaxTokens:        132,
		TopP:             1,
		FrequencyPenalty: 1.7,
		PresencePenalty:  1.7,
		Stop:             []string{fmt.Sprintf("%s:", userName)},
	}
}

// budgetEditPrompt hands the current category allocations and an edit
// request to the generation capability. The output is expected to be a JSON
// object with the full new category mapping and a confirmation sentence.
func budgetEditPrompt(body string, amounts map[string]string, userName string) ai.GenerateRequest {
	// json.Marshal sorts map keys, the snapshot is deterministic
	snapshot, _ := json.Marshal(amounts)

	prompt := fmt.Sprintf(`Below is a program that modifies the data of %[1]s's budgeting categories based on their request.
Modify the mapping according to the request and answer with JSON.
Each request is independent.
If you can't find the budget, don't change anything and explain why in the response.
Set newly created budgets to a value of "N/A".
Also write a happy message to %[1]s informing them of the change in a sentence.

Categories: {"Clothing":"N/A","Donation":"200","Education":"N/A","Holiday":"200"}
Prompt: Add a new section called Restaurants and allocate 500 dollars to it
Output: {"categories":{"Clothing":"N/A","Donation":"200","Education":"N/A","Holiday":"200","Restaurants":"500"},"response":"You've added a new section called Restaurants and allocated 500 dollars to it!"}

Categories: {"Gifts":"N/A","Housing":"N/A","Transportation":"100"}
Prompt: Delete my budget for transportation
Output: {"categories":{"Gifts":"N/A","Housing":"N/A"},"response":"Your transportation budget has been deleted!"}

Categories: {"Food":"24.00","Housing":"N/A","Transportation":"100"}
Prompt: Change my healthcare budget
Output: {"categories":{"Food":"24.00","Housing":"N/A","Transportation":"100"},"response":"I couldn't find a budget called healthcare."}

Categories: {"Education":"N/A","Holiday":"200","Medical":"100"}
Prompt: Create a transportation budget
Output: {"categories":{"Education":"N/A","Holiday":"200","Medical":"100","Transportation":"N/A"},"response":"You've created a transportation budget!"}

-------------------------------------------

Categories: %[2]s
Prompt: %[3]s
Output:`, userName, snapshot, body)

	return ai.GenerateRequest{
		Prompt:    prompt,
		MaxTokens: 296,
		TopP:      1,
		Stop:      []string{"Output:"},
	}
}

// extractionPrompt asks for the line items of a transaction message as a
// JSON list. Relative date phrases are resolved against now before
// extraction, the capability has no notion of the current date.
func extractionPrompt(body string, now time.Time) ai.GenerateRequest {
	day := func(t time.Time) string {
		return fmt.Sprintf("%d-%d-%d", t.Month(), t.Day(), t.Year())
	}

	today := day(now)
	yesterday := day(now.AddDate(0, 0, -1))
	threeDaysAgo := day(now.AddDate(0, 0, -3))
	aWeekAgo := day(now.AddDate(0, 0, -7))

	prompt := fmt.Sprintf(`A program that extracts the item, location, date, and amount for each transaction in a sentence as a JSON list.
If you don't know the value of a field, use "?" as its value.
The program determines the date relative to today from the sentence.
Today is %[1]s.

Sentence: Hey, I bought some band-aids at Shoppers today for 10 bucks. I also bought 50 k worth of chicken wings at Kentucky Fried Chicken.
List: [{"item":"Band-aids","amount":10,"location":"Shoppers","date":"%[1]s"},{"item":"Chicken Wings","amount":50000,"location":"Kentucky Fried Chicken","date":"%[1]s"}]

Sentence: yesterday I bought a new pair of shoes at Shoppers for 20 bucks.
List: [{"item":"Shoes","amount":20,"location":"Shoppers","date":"%[2]s"}]

Sentence: I bought a burger at McDonalds 3 days ago
List: [{"item":"Burger","amount":"?","location":"McDonalds","date":"%[3]s"}]

Sentence: I bought a shirt for $15 at Walmart a week ago.
List: [{"item":"Shirt","amount":15,"location":"Walmart","date":"%[4]s"}]

Sentence: %[5]s
List:`, today, yesterday, threeDaysAgo, aWeekAgo, body)

	return ai.GenerateRequest{
		Prompt:    prompt,
		MaxTokens: 300,
		TopP:      1,
		Stop:      []string{"Sentence:"},
	}
}

// inquiryPrompt is the generative rendering of an account inquiry: the full
// spending table plus the question.
func inquiryPrompt(body, userName, assistantName, table string, now time.Time) ai.GenerateRequest {
	prompt := fmt.Sprintf(`The following is a conversation with an AI assistant named %[1]s and the user %[2]s.
The AI assistant is helpful, clever, optimistic, motivational, reflective and very friendly.
The table below contains all of %[2]s's spending history and budget information for this month.
Use this table to create a detailed, human-like, and enthusiastic response to %[2]s's request.
The date is in the format month/day/year.

Date today: %[3]d/%[4]d/%[5]d

%[6]s

Conversation
------------------------
%[2]s: %[7]s
%[1]s:`, assistantName, userName, now.Month(), now.Day(), now.Year(), table, body)

	return ai.GenerateRequest{
		Prompt:      prompt,
		Temperature: 0.5,
		MaxTokens:   200,
		TopP:        1,
		Stop:        []string{userName},
	}
}
