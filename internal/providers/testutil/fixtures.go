package testutil

// Canned provider API payloads for adapter tests

// OpenAIResponsesPayload mimics a /v1/responses result with a web search
// call, a message item, and two url_citation annotations (one duplicated)
var OpenAIResponsesPayload = []byte(`{
  "id": "resp_123",
  "object": "response",
  "status": "completed",
  "output": [
    {
      "id": "ws_1",
      "type": "web_search_call",
      "status": "completed"
    },
    {
      "id": "msg_1",
      "type": "message",
      "content": [
        {
          "type": "output_text",
          "text": "Acme leads the market according to recent reviews.",
          "annotations": [
            {
              "type": "url_citation",
              "start_index": 0,
              "end_index": 20,
              "title": "Acme Review",
              "url": "https://www.example.com/acme-review"
            },
            {
              "type": "url_citation",
              "start_index": 21,
              "end_index": 40,
              "title": "Acme Review Duplicate",
              "url": "https://www.example.com/acme-review"
            },
            {
              "type": "url_citation",
              "start_index": 41,
              "end_index": 49,
              "title": "",
              "url": "not a url"
            }
          ]
        }
      ]
    }
  ],
  "usage": {"input_tokens": 12, "output_tokens": 34, "total_tokens": 46}
}`)

// GeminiPayload mimics a generateContent result with grounding metadata
var GeminiPayload = []byte(`{
  "candidates": [
    {
      "content": {
        "parts": [
          {"text": "Acme and Widgetco "},
          {"text": "are the leading options."}
        ]
      },
      "groundingMetadata": {
        "groundingChunks": [
          {"web": {"uri": "https://www.vendors.example/acme", "title": "Acme Overview"}},
          {"web": {"uri": "https://www.vendors.example/acme", "title": "Duplicate"}},
          {"web": {"uri": "https://vendors.example/widgetco"}}
        ],
        "webSearchQueries": ["best widget vendors", "acme reviews"]
      }
    }
  ],
  "usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 25, "totalTokenCount": 35}
}`)

// PerplexityPayload mimics a sonar chat completion with search_results
// plus one bare citation URL not present in search_results
var PerplexityPayload = []byte(`{
  "id": "pplx-1",
  "model": "sonar",
  "created": 1718000000,
  "usage": {"prompt_tokens": 8, "completion_tokens": 40, "total_tokens": 48, "num_search_queries": 2},
  "choices": [
    {
      "index": 0,
      "finish_reason": "stop",
      "message": {"role": "assistant", "content": "Acme is widely recommended for small teams."}
    }
  ],
  "citations": [
    "https://www.reviews.example/acme",
    "https://extra.example/acme-notes"
  ],
  "search_results": [
    {"title": "Acme Reviews 2025", "url": "https://www.reviews.example/acme"}
  ]
}`)
