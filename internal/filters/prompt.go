package filters

import (
	"fmt"
	"strings"

	"github.com/hurxxxx/open-webui-pilelines/shared"
)

// contextMessage 固定插在消息列表头部的system指令
const contextMessage = "You are ChatGPT, a large language model trained by OpenAI. " +
	"Please ensure that all your responses are presented in a clear and organized manner using bullet points, numbered lists, headings, and other formatting tools to enhance readability and user-friendliness. " +
	"Additionally, please respond in the language used by the user in their input."

const maxSelections = 3 //一次最多挂几个知识库

// historyDepth 参与选择判断的最近消息条数
const historyDepth = 4

func buildSelectionSystemPrompt(kbList []*shared.KnowledgeBaseInfo) string {
	var sb strings.Builder
	for _, kb := range kbList {
		sb.WriteString(fmt.Sprintf("- ID: %s\n - Knowledge Base Name: %s\n - Description: %s\n", kb.Id, kb.Name, kb.Description))
	}
	return fmt.Sprintf(`Based on the user's prompt, please find the knowledge base that the user desires.
Available knowledge bases:
%s
Please select the most suitable knowledge bases from the above list that best fit the user's requirements.
Ensure that your response is in JSON format with a "selected_knowledge_bases" list of objects containing only the "id" : KnowledgeID and "name" : Knowledge Name fields. Select at most %d. Do not provide any additional explanations.
If there is no suitable or relevant knowledge base, do not select any. In such cases, return None.`, sb.String(), maxSelections)
}

// buildHistoryPrompt 最近几条消息倒序拼接 最后补上当前问题
func buildHistoryPrompt(body *shared.ChatRequest) string {
	var sb strings.Builder
	sb.WriteString("History:\n")
	count := 0
	for i := len(body.Messages) - 1; i >= 0 && count < historyDepth; i-- {
		msg := body.Messages[i]
		sb.WriteString(fmt.Sprintf("%s: \"\"\"%s\"\"\"\n", strings.ToUpper(msg.Role), msg.Content))
		count++
	}
	sb.WriteString("Query: " + body.LastUserMessage())
	return sb.String()
}

const webSearchSystemPrompt = `Determine whether answering the user's query requires up-to-date information from the web, such as current events, recent releases, prices, weather, or anything after your training data.
Respond in JSON format with only a "web_search" field set to true or false. Do not provide any additional explanations.`
